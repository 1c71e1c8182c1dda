package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/workstat/internal/model"
)

// LoadJSON reads a JSON array of employee objects into a dataset.
// Each object carries the canonical field names:
//
//	[{"age": 30, "salary": 50000, "department": "Eng", "city": "NYC"}, ...]
//
// Design decision: JSON sources decode straight into model.Record rather
// than through the generic column machinery because JSON field names are
// fixed by the struct tags; header remapping only applies to CSV.
func (l *Loader) LoadJSON(name string, r io.Reader) (*model.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []model.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode json dataset: %w", err)
	}

	return model.FromRecords(name, records), nil
}
