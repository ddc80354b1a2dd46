package codec

import (
	"fmt"

	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

const (
	recipeHasNormal    = 1 << 0
	recipeHasExpensive = 1 << 1
)

func encodeRecipe(w *Writer, r *result.RecipeResult) error {
	var flags int
	if r.NormalID().Valid {
		flags |= recipeHasNormal
	}
	if r.ExpensiveID().Valid {
		flags |= recipeHasExpensive
	}
	if err := w.Byte(flags); err != nil {
		return err
	}
	if flags&recipeHasNormal != 0 {
		w.ID(r.NormalID().UUID)
	}
	if flags&recipeHasExpensive != 0 {
		w.ID(r.ExpensiveID().UUID)
	}
	return nil
}

// decodeRecipe restores a recipe's identifiers. Name and priority are not
// carried on the wire and are left empty.
func decodeRecipe(rd *Reader) (*result.RecipeResult, error) {
	flags, err := rd.Byte()
	if err != nil {
		return nil, err
	}
	if flags&^(recipeHasNormal|recipeHasExpensive) != 0 {
		return nil, fmt.Errorf("%w: invalid recipe flags 0x%02x", ErrDecoding, flags)
	}
	r := result.NewRecipe("", 0)
	if flags&recipeHasNormal != 0 {
		id, err := rd.ID()
		if err != nil {
			return nil, err
		}
		r.SetNormalID(id)
	}
	if flags&recipeHasExpensive != 0 {
		id, err := rd.ID()
		if err != nil {
			return nil, err
		}
		r.SetExpensiveID(id)
	}
	return r, nil
}
