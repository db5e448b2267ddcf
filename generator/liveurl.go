package generator

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// LiveEditorBaseURL is the mermaid.live entry point that accepts a base64 state.
const LiveEditorBaseURL = "https://mermaid.live/edit#base64:"

type liveEditorState struct {
	Code    string   `json:"code"`
	Mermaid struct{} `json:"mermaid"`
}

// LiveEditorURL returns a link that opens diagram in the Mermaid live editor.
func LiveEditorURL(diagram string) (string, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(liveEditorState{Code: diagram}); err != nil {
		return "", err
	}

	state := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return LiveEditorBaseURL + base64.StdEncoding.EncodeToString(state), nil
}
