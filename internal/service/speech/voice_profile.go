package speech

import "strings"

// 默认的 Azure 神经网络声音
const (
	DefaultHindiVoice   = "hi-IN-SwaraNeural"
	DefaultEnglishVoice = "en-US-AriaNeural"
	DefaultSlowRate     = "-10%"
)

// VoiceProfile 单次合成选用的声音与语言
type VoiceProfile struct {
	Name  string
	Lang  string
	Hindi bool
}

// VoiceSet 配置的声音集合
type VoiceSet struct {
	Hindi    string
	English  string
	SlowRate string
}

// Select 天城文使用印地语声音，其余使用英语声音
func (v VoiceSet) Select(text string) VoiceProfile {
	if IsDevanagari(text) {
		return VoiceProfile{Name: orDefault(v.Hindi, DefaultHindiVoice), Lang: "hi-IN", Hindi: true}
	}
	return VoiceProfile{Name: orDefault(v.English, DefaultEnglishVoice), Lang: "en-US"}
}

func (v VoiceSet) slowRate() string {
	return orDefault(v.SlowRate, DefaultSlowRate)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
