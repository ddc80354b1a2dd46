package codec

import (
	"fmt"

	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

func encodeItem(w *Writer, it *result.ItemResult) error {
	if !it.ID().Valid {
		return fmt.Errorf("%w: item %s/%s has no id", ErrEncoding, it.Type(), it.Name())
	}
	w.ID(it.ID().UUID)

	recipes := it.Recipes().All()
	if err := w.VarShort(len(recipes)); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := encodeRecipe(w, r); err != nil {
			return err
		}
	}
	return nil
}

// decodeItem restores an item's id and recipes. Type and name are looked
// up by the caller.
func decodeItem(rd *Reader) (*result.ItemResult, error) {
	id, err := rd.ID()
	if err != nil {
		return nil, err
	}
	n, err := rd.VarShort()
	if err != nil {
		return nil, err
	}
	it := result.NewItem("", "", 0)
	it.SetID(id)
	for range n {
		r, err := decodeRecipe(rd)
		if err != nil {
			return nil, err
		}
		it.AddRecipe(r)
	}
	return it, nil
}
