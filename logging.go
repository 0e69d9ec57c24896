// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"fmt"

	"go.uber.org/zap"
)

// NewProductionLogger builds the default structured logger used by
// SetLogger/Arena.SetLogger when a caller wants diagnostics without
// wiring its own zap.Logger — JSON output at info level, matching the
// library's own default construction.
func NewProductionLogger() (*zap.SugaredLogger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// String returns a short debug representation of the buffer's storage
// mode and cursor state. It never panics and never touches buffer
// contents, so it is safe to call on a buffer mid-corruption while
// debugging.
func (buf *Buffer) String() string {
	mode := "heap"
	loc := fmt.Sprintf("base=%d", buf.base)
	if buf.kind == storageOff {
		mode = "off-heap"
		loc = fmt.Sprintf("address=%#x", buf.base)
	}
	return fmt.Sprintf(
		"membuf.Buffer{mode=%s, %s, size=%d, readerIndex=%d, writerIndex=%d, limit=%d}",
		mode, loc, buf.size, buf.readerIdx, buf.writerIdx, buf.limit,
	)
}
