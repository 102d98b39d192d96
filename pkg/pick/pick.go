// Package pick draws the picks of the day from candidate lists and serves them over HTTP.
package pick

import (
	"strconv"

	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/daily"
)

// Request describes what to draw.
type Request struct {
	List      string
	Date      daily.DateKey
	Namespace daily.Namespace

	// Count is the number of distinct extra picks.
	Count int

	// Shuffle requests the whole list in the order of the day.
	Shuffle bool
}

// Result is the outcome of the draw.
type Result struct {
	Date      string `json:"date"`
	Namespace string `json:"namespace"`
	List      string `json:"list"`
	Digest    string `json:"digest"`

	// Seed is a decimal string because JSON numbers lose precision above 2^53.
	Seed     string   `json:"seed"`
	ID       string   `json:"id"`
	Pick     string   `json:"pick"`
	Picks    []string `json:"picks,omitempty"`
	Shuffled []string `json:"shuffled,omitempty"`
}

// Draw makes the draws of the request, in a fixed order, on a single stream:
// the pick first, then extra picks, then the shuffle.
// Namespace defaults to the name of the list.
func Draw(lists *candidates.Registry, digest daily.Digest, req Request) (Result, error) {
	list, err := lists.Get(req.List)
	if err != nil {
		return Result{}, err
	}
	ns := req.Namespace
	if ns == "" {
		ns = daily.Namespace(list.Name)
	}

	seed, err := digest.Seed(req.Date, ns)
	if err != nil {
		return Result{}, err
	}
	id, err := daily.DayID(req.Date, ns)
	if err != nil {
		return Result{}, err
	}

	stream := daily.NewStream(seed)
	pick, err := daily.ChooseOne(stream, list.Items)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Date:      req.Date.String(),
		Namespace: string(ns),
		List:      list.Name,
		Digest:    digest.String(),
		Seed:      strconv.FormatUint(uint64(seed), 10),
		ID:        id.String(),
		Pick:      pick,
	}
	if req.Count > 0 {
		if res.Picks, err = daily.ChooseN(stream, list.Items, req.Count); err != nil {
			return Result{}, err
		}
	}
	if req.Shuffle {
		res.Shuffled = daily.Shuffle(stream, list.Items)
	}
	return res, nil
}
