package speech

import (
	"fmt"
	"strings"
)

// phonemeRule 为一个印地语词添加 IPA 发音标注
type phonemeRule struct {
	word string
	ipa  string
}

// hindiPhonemes 按顺序应用，每次请求只替换一遍
var hindiPhonemes = []phonemeRule{
	{word: "मैं", ipa: "mɛ̃"},
	{word: "में", ipa: "meː̃"},
	{word: "नहीं", ipa: "nəɦĩː"},
	{word: "कृपया", ipa: "kɾɪpjaː"},
	{word: "धन्यवाद", ipa: "d̪ʱənjəʋaːd̪"},
	{word: "नमस्ते", ipa: "nəməsˈteː"},
	{word: "चाहिए", ipa: "t͡ʃaːɦije"},
}

var phonemeReplacer = newPhonemeReplacer(hindiPhonemes)

func newPhonemeReplacer(rules []phonemeRule) *strings.Replacer {
	pairs := make([]string, 0, len(rules)*2)
	for _, rule := range rules {
		pairs = append(pairs, rule.word, fmt.Sprintf(`<phoneme alphabet="ipa" ph="%s">%s</phoneme>`, rule.ipa, rule.word))
	}
	return strings.NewReplacer(pairs...)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// IsDevanagari 判断文本是否包含 U+0900..U+097F 范围内的字符
func IsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// ApplyHindiPhonemes 先做 XML 转义，再为已知词加上 phoneme 标签。
// 替换结果不会被再次扫描，每个词只包裹一次。
func ApplyHindiPhonemes(text string) string {
	return phonemeReplacer.Replace(xmlEscaper.Replace(text))
}

// SSMLDocument 生成的 SSML 及其选用的声音
type SSMLDocument struct {
	Markup string
	Voice  VoiceProfile
	Rate   string
}

// BuildSSML 为文本生成 speak 文档
func BuildSSML(text string, slow bool, voices VoiceSet) SSMLDocument {
	profile := voices.Select(text)

	body := xmlEscaper.Replace(text)
	if profile.Hindi {
		body = ApplyHindiPhonemes(text)
	}

	rate := "0%"
	if slow {
		rate = voices.slowRate()
	}

	markup := fmt.Sprintf(`<speak version="1.0" xml:lang="%s" xmlns:mstts="https://www.w3.org/2001/mstts">
  <voice name="%s">
    <prosody rate="%s">
      %s
    </prosody>
  </voice>
</speak>`, profile.Lang, profile.Name, rate, body)

	return SSMLDocument{Markup: markup, Voice: profile, Rate: rate}
}
