package types

import (
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// Identifier prefixes for the gateway's entities
const (
	UUID_PREFIX_REQUEST       = "req"
	UUID_PREFIX_REQUEST_EVENT = "evt"
	UUID_PREFIX_ALERT         = "alert"
)

const (
	SHORT_ID_PREFIX_ALERT = "AL-"
)

// GenerateUUID returns a ULID, which sorts lexically by creation time
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix prepends an entity prefix to a fresh ULID,
// ex req_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}

var (
	sidGenerator *shortid.Shortid
	sidOnce      sync.Once
)

func initShortID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("shortid generator init failed: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns an uppercase human readable ID
// capped at 12 characters, e.g. AL-XYZ12A8Q
func GenerateShortIDWithPrefix(prefix string) string {
	sidOnce.Do(initShortID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}

	// shortid can emit '-', which would read like a second separator
	id = strings.ReplaceAll(id, "-", "")

	room := 12 - len(prefix)
	if room <= 0 {
		return ""
	}
	if len(id) > room {
		id = id[:room]
	}

	return strings.ToUpper(prefix + id)
}
