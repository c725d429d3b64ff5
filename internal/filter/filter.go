// Package filter removes generated items containing denylisted terms.
package filter

import (
	"strings"

	"github.com/partypulse/partygen/internal/model"
)

// standardWords blocks illegal activity, severe violence, content involving
// minors, discrimination and extremism. Relaxed earlier: flirtation, alcohol
// and prank terms are no longer listed.
var standardWords = []string{
	// 违法相关
	"毒品", "诈骗", "赌博", "走私", "贩卖",
	// 严重暴力
	"杀人", "砍杀", "虐待", "绑架",
	// 未成年保护
	"未成年", "儿童色情", "恋童",
	// 歧视相关
	"歧视", "种族歧视", "地域黑", "性别歧视", "残疾歧视",
	// 极端内容
	"自杀", "自残", "邪教", "恐怖主义",
}

// explicitWords is the permissive variant applied to the explicit style.
// The two lists are equal today; keep them separate so they can diverge.
var explicitWords = []string{
	"毒品", "诈骗", "赌博", "走私", "贩卖",
	"杀人", "砍杀", "虐待", "绑架",
	"未成年", "儿童色情", "恋童",
	"歧视", "种族歧视", "地域黑", "性别歧视", "残疾歧视",
	"自杀", "自残", "邪教", "恐怖主义",
}

// ContainsSensitive reports whether text matches any denylisted term,
// case-insensitively.
func ContainsSensitive(text string, explicit bool) bool {
	words := standardWords
	if explicit {
		words = explicitWords
	}
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// Items returns the items whose text passes the denylist. Matched items are
// removed whole; text is never redacted. The removed count is
// len(items) - len(result).
func Items(items []model.Item, explicit bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if ContainsSensitive(it.Text, explicit) {
			continue
		}
		out = append(out, it)
	}
	return out
}
