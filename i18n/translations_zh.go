package i18n

var chineseTranslations = map[string]string{
	// 演示文稿工具
	"tool.presentation_created": "已创建新演示文稿：'%s'",
	"tool.presentation_exists":  "演示文稿已存在，请继续添加幻灯片。",
	"tool.slide_added":          "已添加第 %d 张幻灯片，背景色 %s",
	"tool.current_slide_set":    "当前幻灯片已设为第 %d 张",
	"tool.slide_out_of_range":   "错误：幻灯片编号 %d 超出范围，共 %d 张。",
	"tool.no_slide":             "错误：没有可用的幻灯片，请先调用 add_slide（或 set_current_slide）。",
	"tool.title_added":          "已添加标题：'%s'",
	"tool.body_added":           "已添加正文：'%s'",
	"tool.slide_number_added":   "已添加页码：%d",
	"tool.metric_card_added":    "已添加指标卡片：%s = %s (%s)",
	"tool.subtitle_added":       "已添加副标题：'%s'",
	"tool.finalized":            "演示文稿已完成：%d 张幻灯片，%d 字节",
	"tool.empty_deck":           "错误：演示文稿中没有幻灯片。",
	"tool.already_finalized":    "错误：演示文稿已完成，请调用 create_presentation 新建。",
	"tool.failed":               "错误：%s",

	// HTTP 接口
	"api.invalid_request":    "请求格式无效",
	"api.invalid_base64":     "base64 数据无效",
	"api.session_not_found":  "会话不存在",
	"api.tool_not_found":     "未知工具：%s",
	"api.slide_out_of_range": "幻灯片 %d 超出范围",
	"api.internal_error":     "服务器内部错误",
	"api.preview_too_large":  "预览尺寸超过 %d 像素",
}
