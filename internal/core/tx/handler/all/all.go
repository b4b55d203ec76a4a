// Package all registers the handler of every supported transaction kind.
// Import it for its side effects.
package all

import (
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/asset"
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/group"
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/payment"
	_ "github.com/LeJamon/goQortald/internal/core/tx/handler/poll"
)
