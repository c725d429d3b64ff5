// Package prompt derives the system/user instruction pair for one
// generation request. Build is a pure function: same request, same prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/partypulse/partygen/internal/model"
)

const truthInstruction = `
**真心话（Truth）模式 - 严格要求**：
✅ 必须是：
  - 提问、询问、要求回答
  - 让玩家用语言表达：讲述、描述、回答、分享
  - 题目开头：你..., 描述..., 讲述..., 说说..., 回忆...

❌ 绝对禁止：
  - 任何需要"做动作"的内容（如：模仿、表演、做出...动作）
  - 任何需要"执行任务"的内容（如：完成、挑战）
  - 题目中不能出现：模仿、表演、做、执行、完成、动作、姿势等动词

示例（正确）：
  - 你最尴尬的一次经历是什么？
  - 描述你童年时最有趣的一次恶作剧
  - 讲述你人生中最'社死'的瞬间`

const dareInstruction = `
**大冒险（Dare）模式 - 严格要求**：
✅ 必须是：
  - 命令、指令、要求执行
  - 让玩家现场做动作：模仿、表演、做出、完成
  - 题目开头：模仿..., 做出..., 表演..., 完成..., 向...做...

❌ 绝对禁止：
  - 任何只需要"说话回答"的内容
  - 题目中不能只是：讲述、描述、回答、说说、回忆等纯语言表达

示例（正确）：
  - 模仿一种动物叫声持续10秒
  - 用最夸张的姿势完成5个深蹲
  - 对着房间里的一个物品表白30秒`

// Build derives the prompt pair from a validated request. The style selects
// tone and safety boundaries, the mode selects modality constraints, and the
// seed pins the topic dimension.
func Build(req *model.GenerationRequest) model.PromptPair {
	modeInstruction := truthInstruction
	example := "你最尴尬的一次经历是什么？"
	if req.Mode == model.ModeDare {
		modeInstruction = dareInstruction
		example = "模仿一种动物叫声持续10秒"
	}

	var system string
	if req.IsExplicit() {
		if req.Mode == model.ModeTruth {
			example = "你最大胆的一次约会经历是什么？"
		} else {
			example = "选一个人，用眼神对视30秒不许笑"
		}
		system = fmt.Sprintf(`你是成人派对互动策划助手。根据模式生成大胆、刺激的问题或任务，适合18岁以上成人聚会。
可以但不限于包含：暧昧话题、性暗示、轻度身体接触挑战、饮酒惩罚、恶作剧挑战、隐私身体部位、性经历等。
禁止包含：违法内容、涉及未成年人、歧视性内容、严重暴力。
生成题目的场景和话题要多变，避免单一重复，努力让派对持续升温和有趣。
确保语言简洁，任务可执行。

%s

输出格式为严格的 JSON 数组，每项包含 type（%s）与 text（题目内容）。
示例：
[
  {"type": "%s", "text": "%s"}
]`, modeInstruction, req.Mode, req.Mode, example)
	} else {
		system = fmt.Sprintf(`你是派对互动策划助手。根据模式与风格生成简洁、可执行的问题或任务，避免不当内容。
生成题目的场景和话题要多变，避免单一重复，努力让派对持续升温和有趣。

%s

输出格式为严格的 JSON 数组，每项包含 type（%s）与 text（题目内容）。
示例：
[
  {"type": "%s", "text": "%s"}
]`, modeInstruction, req.Mode, req.Mode, example)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "语言：%s；模式：%s；风格：%s；数量：%d\n", req.Locale, req.Mode, req.Style, req.Count)
	fmt.Fprintf(&user, "受众年龄：%s；尺度：%s；题目编号：%d", req.AudienceAge, req.Intensity, req.Seed)

	if dim := dimensionFor(req.Style, req.Mode, req.Seed); dim != "" {
		fmt.Fprintf(&user, `

🎯 本次核心话题维度：【%s】
⚠️ 请严格围绕"%s"这个维度设计题目内容，不要偏离到其他维度。
每个维度都有独特的表达方式，请充分发挥创意。`, dim, dim)
	} else {
		user.WriteString(dimensionHint)
	}

	fmt.Fprintf(&user, "\n\n请生成 %d 条符合要求的内容，严格遵守 JSON 格式。", req.Count)

	return model.PromptPair{
		System: strings.TrimSpace(system),
		User:   strings.TrimSpace(user.String()),
	}
}
