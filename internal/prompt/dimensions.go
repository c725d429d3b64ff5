package prompt

import "github.com/partypulse/partygen/internal/model"

// styleDimensions maps a style to its per-mode topic dimensions. A request's
// seed picks one dimension deterministically so repeated calls with the same
// seed land on the same sub-topic and stay coherent with the cache key.
var styleDimensions = map[string]map[model.Mode][]string{
	"搞笑": {
		model.ModeTruth: {
			"童年趣事", "尴尬糗事", "奇葩习惯", "搞笑误会", "离谱梦境", "社死瞬间",
		},
		model.ModeDare: {
			"模仿表演", "夸张表情", "搞怪姿势", "即兴配音", "怪异走路", "方言挑战",
		},
	},
	"经典": {
		model.ModeTruth: {
			"初恋回忆", "秘密心事", "最难忘的事", "后悔的决定", "暗恋经历",
		},
		model.ModeDare: {
			"才艺展示", "真情告白", "体能挑战", "即兴演讲",
		},
	},
	"职场": {
		model.ModeTruth: {
			"奇葩同事", "摸鱼经历", "面试翻车", "加班吐槽", "办公室八卦",
		},
		model.ModeDare: {
			"模仿老板", "即兴汇报", "电梯演讲", "办公室礼仪表演",
		},
	},
	"情侣": {
		model.ModeTruth: {
			"心动瞬间", "恋爱标准", "吃醋经历", "理想约会",
		},
		model.ModeDare: {
			"对视挑战", "甜蜜互动", "情话接龙", "模仿对方",
		},
	},
	model.StyleExplicit: {
		model.ModeTruth: {
			"大胆经历", "隐秘幻想", "暧昧往事", "心动禁区",
		},
		model.ModeDare: {
			"身体接触挑战", "暧昧互动", "饮酒挑战", "大胆表白",
		},
	},
}

// dimensionFor returns the seeded dimension for a style/mode pair, or ""
// when the style has no dimension table.
func dimensionFor(style string, mode model.Mode, seed int) string {
	dims := styleDimensions[style][mode]
	if len(dims) == 0 {
		return ""
	}
	idx := seed % len(dims)
	if idx < 0 {
		idx += len(dims)
	}
	return dims[idx]
}

// dimensionHint is appended when a style has no dimension table, nudging the
// model toward topical variety without a hard constraint.
const dimensionHint = "\n\n话题和场景要多样化，避免与常见题目雷同。"
