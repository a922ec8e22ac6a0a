package main

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/pkg/audio"

	"github.com/fatih/color"
)

// voicecli is a terminal client for the voice question pipeline:
// upload a document, pick a language, then hold a push-to-talk style
// conversation with the backend over the REST API. Recording uses the
// default microphone and stops on Enter.

type apiResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *client) postJSON(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) postFile(path, field, fileName string, data []byte, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *client) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func uploadAndWait(c *client, docPath string) (string, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return "", err
	}

	var uploaded dto.UploadDocumentResponse
	if err := c.postFile("/document/v1/upload", "file", filepath.Base(docPath), data, nil, &uploaded); err != nil {
		return "", err
	}
	color.Green("Uploaded %s (%d chunks)", uploaded.Name, uploaded.ChunkCount)

	for {
		var status dto.DocumentStatusResponse
		if err := c.get("/document/v1/"+uploaded.DocumentId+"/status", &status); err != nil {
			return "", err
		}
		switch status.Status {
		case "ready":
			return uploaded.DocumentId, nil
		case "failed":
			return "", fmt.Errorf("document indexing failed")
		}
		fmt.Printf("\rIndexing... %d/%d", status.IndexedDone, status.ChunkCount)
		time.Sleep(500 * time.Millisecond)
	}
}

func recordQuestion(stdin *bufio.Reader, wavPath string) (int, error) {
	source, err := audio.NewMicrophoneSource()
	if err != nil {
		return 0, fmt.Errorf("open microphone: %w", err)
	}
	defer source.Close()

	rec := audio.NewRecorder(source)
	if err := rec.Start(); err != nil {
		return 0, err
	}

	color.Yellow("Recording... press Enter to stop.")
	stdin.ReadString('\n')
	rec.Stop()

	if err := rec.Save(wavPath); err != nil {
		return 0, err
	}
	return rec.FrameCount(), nil
}

func main() {
	server := flag.String("server", "http://localhost:3000", "backend base URL")
	docPath := flag.String("doc", "", "document to upload (pdf, docx or txt)")
	language := flag.String("lang", "English", "answer language display name")
	token := flag.String("token", "", "bearer token when auth is enabled")
	saveAudio := flag.String("save-audio", "", "write spoken answers as MP3 files into this directory")
	flag.Parse()

	if *docPath == "" {
		color.Red("Usage: voicecli -doc <file> [-lang Spanish] [-server URL]")
		os.Exit(1)
	}

	c := &client{baseURL: strings.TrimRight(*server, "/") + "/api", token: *token, http: &http.Client{}}
	stdin := bufio.NewReader(os.Stdin)

	color.Cyan("🎙  Document voice assistant")

	docID, err := uploadAndWait(c, *docPath)
	if err != nil {
		color.Red("Upload failed: %v", err)
		os.Exit(1)
	}

	var session dto.CreateSessionResponse
	err = c.postJSON("/chat/v1/session", dto.CreateSessionRequest{Language: *language, DocumentId: docID}, &session)
	if err != nil {
		color.Red("Create session failed: %v", err)
		os.Exit(1)
	}
	color.Green("\nSession %s ready (language: %s)", session.SessionId, session.LanguageCode)

	turn := 0
	for {
		fmt.Print("\nPress Enter to ask a question (or type q + Enter to quit): ")
		line, _ := stdin.ReadString('\n')
		if strings.TrimSpace(line) == "q" {
			return
		}

		wavPath := filepath.Join(os.TempDir(), fmt.Sprintf("voicecli-%s-%d.wav", session.SessionId, turn))
		frames, err := recordQuestion(stdin, wavPath)
		if err != nil {
			color.Red("Recording failed: %v", err)
			continue
		}
		if frames == 0 {
			color.Red("Nothing was recorded.")
			continue
		}

		wav, err := os.ReadFile(wavPath)
		os.Remove(wavPath)
		if err != nil {
			color.Red("Read recording: %v", err)
			continue
		}

		color.Yellow("Thinking...")
		var res dto.VoiceAskResponse
		err = c.postFile("/voice/v1/ask", "audio", "question.wav", wav, map[string]string{"session_id": session.SessionId}, &res)
		if err != nil {
			color.Red("Request failed: %v", err)
			continue
		}

		switch res.Outcome {
		case dto.VoiceOutcomeRecognized:
			color.Cyan("You asked: %s", res.RecognizedText)
			color.Green("Answer: %s", res.Answer.TranslatedAnswer)
			if res.AnswerAudio != "" && *saveAudio != "" {
				mp3, decErr := base64.StdEncoding.DecodeString(res.AnswerAudio)
				if decErr == nil {
					out := filepath.Join(*saveAudio, fmt.Sprintf("answer-%d.mp3", turn))
					if writeErr := os.WriteFile(out, mp3, 0644); writeErr == nil {
						fmt.Printf("Spoken answer saved to %s\n", out)
					}
				}
			}
		default:
			color.Red("%s", res.Message)
		}
		turn++
	}
}
