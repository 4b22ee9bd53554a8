package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "value" or "name").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "ambiguous_kind":
			msg = "スキーマ種別が複数指定されています: {kinds}"
		case "missing_property_name":
			msg = "propertyName がないプロパティを無視しました"
		case "duplicate_property":
			msg = "プロパティ {name} が重複しています（後勝ち）"
		case "dangling_required":
			msg = "required の {name} に対応するプロパティがありません"
		case "lossy_coercion":
			msg = "整数スキーマの値 {value} を切り捨てました"
		case "invalid_literal":
			msg = "{predicate} のリテラル値が不正です: {value}"
		case "cyclic_reference":
			msg = "循環参照を検出しました"
		case "max_depth":
			msg = "最大深さ {max} を超えました"
		case "missing_target":
			msg = "フォームにターゲットがありません"
		case "invalid_target":
			msg = "フォームのターゲットが不正です: {value}"
		case "unknown_security_scheme":
			msg = "未知のセキュリティスキームです"
		case "missing_schema":
			msg = "スキーマを読み取れません"
		case "unknown_operation":
			msg = "未知の操作種別です: {value}"
		}
	default: // "en"
		switch code {
		case "ambiguous_kind":
			msg = "multiple schema kinds declared: {kinds}"
		case "missing_property_name":
			msg = "property without propertyName skipped"
		case "duplicate_property":
			msg = "property {name} declared more than once (last wins)"
		case "dangling_required":
			msg = "required name {name} has no matching property"
		case "lossy_coercion":
			msg = "integer schema value {value} truncated"
		case "invalid_literal":
			msg = "invalid literal for {predicate}: {value}"
		case "cyclic_reference":
			msg = "cyclic schema reference"
		case "max_depth":
			msg = "maximum depth {max} exceeded"
		case "missing_target":
			msg = "form has no target"
		case "invalid_target":
			msg = "invalid form target: {value}"
		case "unknown_security_scheme":
			msg = "unknown security scheme"
		case "missing_schema":
			msg = "schema could not be read"
		case "unknown_operation":
			msg = "unknown operation type: {value}"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand substitutes {key} placeholders; unknown keys are left as-is.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
