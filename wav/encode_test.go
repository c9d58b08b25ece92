package wav_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/wav"
)

func TestEncodeHeader(t *testing.T) {
	for _, precision := range []int{1, 2, 3} {
		format := polytone.Format{SampleRate: 22050, NumChannels: 2, Precision: precision}
		path := filepath.Join(t.TempDir(), "silence.wav")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := wav.Encode(f, polytone.Silence(1000), format); err != nil {
			t.Fatalf("precision %d: %v", precision, err)
		}
		f.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		dataSize := 1000 * format.Width()
		if len(data) != wav.HeaderSize+dataSize {
			t.Fatalf("precision %d: file size %d, expected %d", precision, len(data), wav.HeaderSize+dataSize)
		}
		if riff := binary.LittleEndian.Uint32(data[4:8]); int(riff) != len(data)-8 {
			t.Errorf("precision %d: RIFF size %d, expected %d", precision, riff, len(data)-8)
		}
		if bits := binary.LittleEndian.Uint16(data[34:36]); int(bits) != precision*8 {
			t.Errorf("precision %d: bits per sample %d", precision, bits)
		}
	}
}

func TestEncodeRejectsFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, format := range []polytone.Format{
		{SampleRate: 44100, NumChannels: 0, Precision: 2},
		{SampleRate: 44100, NumChannels: 2, Precision: 4},
	} {
		if err := wav.Encode(f, polytone.Silence(10), format); err == nil {
			t.Errorf("format %+v accepted", format)
		}
	}
}
