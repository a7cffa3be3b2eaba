package service

import (
	"regexp"
	"strings"
)

var (
	boldPattern      = regexp.MustCompile(`\*{1,2}`)
	bulletPattern    = regexp.MustCompile(`(?m)^[•\-]\s+`)
	paragraphPattern = regexp.MustCompile(`\n{2,}`)
	spacePattern     = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanForSpeech 把模型回答清洗成适合 TTS 朗读的纯文本：
// 去掉 Markdown 强调与列表符号，把换行折叠成句号分隔。
func CleanForSpeech(text string) string {
	text = boldPattern.ReplaceAllString(text, "")
	text = bulletPattern.ReplaceAllString(text, "")
	text = paragraphPattern.ReplaceAllString(text, ". ")
	text = strings.ReplaceAll(text, "\n", ". ")
	text = spacePattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, ".. ", ". ")
	return strings.TrimSpace(text)
}
