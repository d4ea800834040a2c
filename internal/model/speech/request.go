package speech

import "io"

// SynthesisRequest 语音合成请求
type SynthesisRequest struct {
	Text string `json:"text"`
	Slow *bool  `json:"slow,omitempty"` // 缺省为 true
}

// IsSlow reports the requested pace. Requests without a slow flag are slow.
func (r SynthesisRequest) IsSlow() bool {
	return r.Slow == nil || *r.Slow
}

// TranscriptionRequest 语音识别请求
type TranscriptionRequest struct {
	Audio    io.Reader `json:"-"`
	Filename string    `json:"filename"`
}
