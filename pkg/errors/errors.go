// Package errors はlightgbm-go全体のエラーハンドリングと警告システムを提供します。
// ネイティブエンジンの呼び出し失敗とパラメータのエンコード失敗を、構造化されたエラー型として表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("lightgbm-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// TruncationWarning は入力や出力が固定長に切り詰められた場合に発生する警告です。
// 例えば、予測入力の長さが特徴量数の倍数でない場合や、特徴量名がバッファ容量を超えた場合など。
type TruncationWarning struct {
	Op      string
	What    string
	Kept    int
	Dropped int
}

func (w *TruncationWarning) Error() string {
	return fmt.Sprintf("%s: %s truncated, kept %d, dropped %d", w.Op, w.What, w.Kept, w.Dropped)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *TruncationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Str("what", w.What).
		Int("kept", w.Kept).
		Int("dropped", w.Dropped).
		Str("type", "TruncationWarning")
}

// NewTruncationWarning は新しいTruncationWarningを作成します。
func NewTruncationWarning(op, what string, kept, dropped int) *TruncationWarning {
	return &TruncationWarning{Op: op, What: what, Kept: kept, Dropped: dropped}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NativeCallError はネイティブエンジンの呼び出しが0以外のステータスを返した場合のエラーです。
// Message には失敗直後に取得したエンジンの最終エラーメッセージが入ります。
type NativeCallError struct {
	Call    string
	Code    int
	Message string
}

func (e *NativeCallError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("lightgbm: %s failed with status %d", e.Call, e.Code)
	}
	return fmt.Sprintf("lightgbm: %s failed with status %d: %s", e.Call, e.Code, e.Message)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NativeCallError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("call", e.Call).
		Int("code", e.Code).
		Str("message", e.Message).
		Str("type", "NativeCallError")
}

// NewNativeCallError は新しいNativeCallErrorを作成し、スタックトレースを付与します。
func NewNativeCallError(call string, code int, message string) error {
	err := &NativeCallError{Call: call, Code: code, Message: message}
	return errors.WithStack(err)
}

// EncodingError はネイティブ呼び出しの前に、引数を変換・検証できなかった場合のエラーです。
// パラメータ値が表現できない場合や、予測入力の形状が不正な場合などに発生します。
type EncodingError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *EncodingError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("lightgbm: %s: %s (got: %v)", e.Op, e.Reason, e.Value)
	}
	return fmt.Sprintf("lightgbm: %s: cannot encode parameter '%s': %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *EncodingError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param_name", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "EncodingError")
}

// NewEncodingError は新しいEncodingErrorを作成し、スタックトレースを付与します。
func NewEncodingError(op, param, reason string, value interface{}) error {
	err := &EncodingError{Op: op, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// CombineErrors は2つのエラーを1つにまとめます。
// 主エラーが優先され、副エラーは詳細として保持されます。どちらかがnilならもう一方を返します。
func CombineErrors(err, otherErr error) error {
	return errors.CombineErrors(err, otherErr)
}

// IsNativeCallError はエラーチェーンにNativeCallErrorが含まれるかを判定します。
func IsNativeCallError(err error) bool {
	var nativeErr *NativeCallError
	return errors.As(err, &nativeErr)
}

// IsEncodingError はエラーチェーンにEncodingErrorが含まれるかを判定します。
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}
