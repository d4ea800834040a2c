package speech

// SynthesisResult 语音合成结果
type SynthesisResult struct {
	Audio       []byte `json:"-"`
	ContentType string `json:"contentType"`
	Voice       string `json:"voice"`
	Language    string `json:"language"`
	SSML        string `json:"ssml,omitempty"`
}

// TranscriptionResponse 语音识别响应
type TranscriptionResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}
