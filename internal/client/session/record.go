package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCorruptRecord = errors.New("corrupt session record")

// record is the persisted layout under the "user" key.
type record struct {
	Idx      *int64  `json:"idx"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
	Picture  *string `json:"picture"`
	Level    *int    `json:"level"`
	Score    *int    `json:"score"`
}

func marshalIdentity(i Identity) ([]byte, error) {
	level, score := i.Level, i.Score
	return json.Marshal(record{
		Idx:      i.ID,
		Name:     i.Name,
		Email:    i.Email,
		Nickname: i.Nickname,
		Picture:  i.Picture,
		Level:    &level,
		Score:    &score,
	})
}

// unmarshalIdentity decodes a persisted record, applying level=1 and score=0
// when they are absent (or zero, for level). Negative values and anything that
// is not a JSON object of the expected shape yield ErrCorruptRecord.
func unmarshalIdentity(data []byte) (Identity, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return Identity{}, fmt.Errorf("%w: null record", ErrCorruptRecord)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	id := Identity{
		ID:       r.Idx,
		Name:     r.Name,
		Email:    r.Email,
		Nickname: r.Nickname,
		Picture:  r.Picture,
		Level:    1,
		Score:    0,
	}
	if r.Level != nil {
		if *r.Level < 0 {
			return Identity{}, fmt.Errorf("%w: negative level %d", ErrCorruptRecord, *r.Level)
		}
		if *r.Level > 0 {
			id.Level = *r.Level
		}
	}
	if r.Score != nil {
		if *r.Score < 0 {
			return Identity{}, fmt.Errorf("%w: negative score %d", ErrCorruptRecord, *r.Score)
		}
		id.Score = *r.Score
	}
	return id, nil
}
