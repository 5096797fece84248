package converter

// TextConverter 定义文本转换器接口
type TextConverter interface {
	TradToSim(text string) string // 将繁体中文转换为简体
}

// nopConverter 原样返回文本，用于关闭繁简转换的场景
type nopConverter struct{}

// NewNopConverter 返回一个不做任何转换的 TextConverter
func NewNopConverter() TextConverter {
	return nopConverter{}
}

func (nopConverter) TradToSim(text string) string { return text }
