package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は回復したパニックから作られるエラーです。
// パニックの値と回復時点のスタックを保持します。
type PanicError struct {
	PanicValue interface{}
	StackTrace string
	Operation  string
}

// Error は error インターフェースを実装します。
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String はスタックトレースを含めた文字列を返します。
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError は操作名とパニックの値から PanicError を作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover は呼び出し元の名前付き戻り値 error へのポインタを渡して defer します。
// パニックは *PanicError になり、既にエラーがある場合はそれをラップして報告します。
//
//	func run() (err error) {
//	    defer errors.Recover(&err, "lab.RunTree")
//	    ...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = fmt.Errorf("panic in %s: %v (original error: %w)", operation, r, *err)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute は fn を実行し、パニックを *PanicError に変換します。
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
