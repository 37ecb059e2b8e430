package search

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidModIndex is returned when a word points outside the mod list it was loaded with.
var ErrInvalidModIndex = errors.New("word references unknown mod")

// Mod is a single result record. Mods are identified by their position in the dataset.
type Mod struct {
	Name        string `json:"name" msgpack:"name"`
	Creator     string `json:"creator" msgpack:"creator"`
	Description string `json:"description" msgpack:"description"`
}

// Word is an indexed token. On the wire it is the tuple [text, rank, modIndex].
// Rank and modIndex must be integers; a fractional rank makes the whole
// document invalid. Lower ranks sort first.
type Word struct {
	Text     string
	Rank     int
	ModIndex int
}

// Result pairs a mod with the word it matched through.
type Result struct {
	Mod  Mod
	Word Word
}

// Dataset is the document served as search-data.json.
type Dataset struct {
	Mods  []Mod  `json:"mods" msgpack:"mods"`
	Words []Word `json:"words" msgpack:"words"`
}

// MarshalJSON encodes the word as a 3-element array.
func (w Word) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{w.Text, w.Rank, w.ModIndex})
}

// UnmarshalJSON decodes a [text, rank, modIndex] array.
func (w *Word) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("word is not an array: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("word has %d elements, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Text); err != nil {
		return fmt.Errorf("word text: %w", err)
	}
	if err := json.Unmarshal(raw[1], &w.Rank); err != nil {
		return fmt.Errorf("word rank: %w", err)
	}
	if err := json.Unmarshal(raw[2], &w.ModIndex); err != nil {
		return fmt.Errorf("word mod index: %w", err)
	}
	return nil
}

// EncodeMsgpack writes the word with the same tuple layout as the JSON form.
func (w Word) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := enc.EncodeString(w.Text); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(w.Rank)); err != nil {
		return err
	}
	return enc.EncodeInt(int64(w.ModIndex))
}

// DecodeMsgpack reads a [text, rank, modIndex] array.
func (w *Word) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 3 {
		return fmt.Errorf("word has %d elements, want 3", n)
	}
	if w.Text, err = dec.DecodeString(); err != nil {
		return fmt.Errorf("word text: %w", err)
	}
	if w.Rank, err = dec.DecodeInt(); err != nil {
		return fmt.Errorf("word rank: %w", err)
	}
	if w.ModIndex, err = dec.DecodeInt(); err != nil {
		return fmt.Errorf("word mod index: %w", err)
	}
	return nil
}

// Validate checks that every word resolves to a mod of the same dataset.
func (d *Dataset) Validate() error {
	for i, w := range d.Words {
		if w.ModIndex < 0 || w.ModIndex >= len(d.Mods) {
			return fmt.Errorf("word %d (%q) -> mod %d of %d: %w", i, w.Text, w.ModIndex, len(d.Mods), ErrInvalidModIndex)
		}
	}
	return nil
}
