package daily

import (
	"github.com/google/uuid"
)

var dayIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/outofforest/dayseed"))

// DayID returns a name-based UUID identifying the date and namespace.
// Like the seed, it never changes for the same inputs.
func DayID(date DateKey, ns Namespace) (uuid.UUID, error) {
	material, err := Material(date, ns)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(dayIDSpace, material), nil
}
