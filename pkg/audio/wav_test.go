package audio

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sineWave(samples int) []int16 {
	out := make([]int16, samples)
	for i := range out {
		out[i] = int16(10000 * math.Sin(2*math.Pi*440*float64(i)/SampleRate))
	}
	return out
}

func TestWAVRoundTrip(t *testing.T) {
	want := sineWave(SampleRate / 4)
	path := filepath.Join(t.TempDir(), "tone.wav")

	if err := WriteWAV(path, want); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	got, rate, err := ReadWAV(path)
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if rate != SampleRate {
		t.Errorf("sample rate = %d, want %d", rate, SampleRate)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, []int16{1, -1, 0}); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE magic: % x", data[:12])
	}
	// 44 byte header plus 2 bytes per sample.
	if len(data) != 44+6 {
		t.Errorf("encoded size = %d, want 50", len(data))
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not riff", data: []byte("this is not audio at all....")},
		{name: "truncated header", data: []byte("RIFF")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeWAV(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeWAVSkipsUnknownChunks(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, []int16{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	// Splice a LIST chunk between the fmt and data chunks.
	list := append([]byte("LIST"), 0x04, 0x00, 0x00, 0x00, 'i', 'n', 'f', 'o')
	spliced := append(append(append([]byte{}, data[:36]...), list...), data[36:]...)
	// Patch the RIFF size for the extra 12 bytes.
	size := uint32(len(spliced) - 8)
	spliced[4] = byte(size)
	spliced[5] = byte(size >> 8)
	spliced[6] = byte(size >> 16)
	spliced[7] = byte(size >> 24)

	samples, rate, err := DecodeWAV(spliced)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if rate != SampleRate || len(samples) != 3 || samples[0] != 7 {
		t.Errorf("got %v at %d Hz", samples, rate)
	}
}

func TestReadWAVMissingFile(t *testing.T) {
	if _, _, err := ReadWAV(filepath.Join(t.TempDir(), "nope.wav")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
