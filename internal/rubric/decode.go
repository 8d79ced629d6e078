package rubric

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ErrNoCriteria indicates the payload held no criteria list.
var ErrNoCriteria = errors.New("rubric has no criteria")

// DecodeRubric parses a loosely conforming rubric. Point values may arrive
// as strings ("10 pts" is not accepted, "10" is). The rubric may be wrapped
// under "rubric" or "rubricStructured".
func DecodeRubric(raw []byte) (*Rubric, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode rubric: invalid JSON")
	}
	return DecodeRubricResult(gjson.ParseBytes(raw))
}

// DecodeRubricResult decodes an already-parsed rubric value.
func DecodeRubricResult(root gjson.Result) (*Rubric, error) {
	for _, wrapper := range []string{"rubricStructured", "rubric"} {
		if w := root.Get(wrapper); w.IsObject() {
			root = w
			break
		}
	}

	crit := root.Get("criteria")
	if !crit.IsArray() {
		return nil, ErrNoCriteria
	}

	r := &Rubric{
		TotalPoints: cast.ToFloat64(root.Get("totalPoints").Value()),
		Notes:       strings.TrimSpace(root.Get("notes").String()),
	}
	crit.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		r.Criteria = append(r.Criteria, Criterion{
			Category:    strings.TrimSpace(cast.ToString(v.Get("category").Value())),
			MaxPoints:   cast.ToFloat64(strings.TrimSpace(cast.ToString(v.Get("maxPoints").Value()))),
			Description: strings.TrimSpace(cast.ToString(v.Get("description").Value())),
		})
		return true
	})
	return r, nil
}
