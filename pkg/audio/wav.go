package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Capture format shared by the recorder and the transcriber:
// mono 16-bit PCM at 16 kHz, pulled in 1024-sample frames.
const (
	SampleRate      = 16000
	Channels        = 1
	BitsPerSample   = 16
	FramesPerBuffer = 1024
)

// WriteWAV writes interleaved 16-bit PCM samples as a standard
// uncompressed WAV container.
func WriteWAV(path string, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeWAV(f, samples)
}

// EncodeWAV writes the RIFF/WAVE header and the sample data.
func EncodeWAV(w io.Writer, samples []int16) error {
	dataSize := uint32(len(samples) * 2)
	byteRate := uint32(SampleRate * Channels * BitsPerSample / 8)
	blockAlign := uint16(Channels * BitsPerSample / 8)

	var header bytes.Buffer
	header.WriteString("RIFF")
	binary.Write(&header, binary.LittleEndian, uint32(36+dataSize))
	header.WriteString("WAVE")
	header.WriteString("fmt ")
	binary.Write(&header, binary.LittleEndian, uint32(16))             // fmt chunk size
	binary.Write(&header, binary.LittleEndian, uint16(1))              // PCM
	binary.Write(&header, binary.LittleEndian, uint16(Channels))
	binary.Write(&header, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&header, binary.LittleEndian, byteRate)
	binary.Write(&header, binary.LittleEndian, blockAlign)
	binary.Write(&header, binary.LittleEndian, uint16(BitsPerSample))
	header.WriteString("data")
	binary.Write(&header, binary.LittleEndian, dataSize)

	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}

// ReadWAV reads a PCM WAV file and returns its 16-bit samples and
// sample rate. Only uncompressed 16-bit PCM is supported.
func ReadWAV(path string) ([]int16, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return DecodeWAV(data)
}

// DecodeWAV parses a RIFF/WAVE byte buffer.
func DecodeWAV(data []byte) ([]int16, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}

	var sampleRate int
	var bitsPerSample uint16
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, 0, fmt.Errorf("fmt chunk too short")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, 0, fmt.Errorf("unsupported wav encoding %d, want PCM", format)
			}
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			if bitsPerSample != 16 {
				return nil, 0, fmt.Errorf("unsupported sample width %d bits, want 16", bitsPerSample)
			}
		case "data":
			if sampleRate == 0 {
				return nil, 0, fmt.Errorf("wav data chunk before fmt chunk")
			}
			samples := make([]int16, chunkSize/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(data[body+i*2 : body+i*2+2]))
			}
			return samples, sampleRate, nil
		}

		// Chunks are word-aligned.
		if chunkSize%2 == 1 {
			chunkSize++
		}
		offset = body + chunkSize
	}

	return nil, 0, fmt.Errorf("wav file has no data chunk")
}
