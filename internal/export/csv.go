package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/cortexforge/internal/rcd"
)

var csvHeader = []string{"t", "hope", "memory", "reinforcement", "gradient"}

// WriteCSV writes one row per step. Floats use the shortest form that
// round-trips, so NaN and Inf appear as "NaN", "+Inf" and "-Inf".
func WriteCSV(w io.Writer, tr rcd.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for i := 0; i < tr.Len(); i++ {
		row[0] = strconv.Itoa(i)
		row[1] = formatFloat(tr.H[i])
		row[2] = formatFloat(tr.M[i])
		row[3] = formatFloat(tr.R[i])
		row[4] = formatFloat(tr.Gradient(i))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
