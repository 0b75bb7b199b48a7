// Package query implements the workout listing pipeline: filter by mode and
// equipment, order by a whitelisted field, then slice into a page.
package query

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/normalize"
)

const DefaultPageSize = 10

var sortFields = map[string]bool{
	"name":      true,
	"mode":      true,
	"createdAt": true,
	"updatedAt": true,
}

// WorkoutParams mirrors the list query string. Length and Page are nil when
// the parameter was absent, which differs from present-but-empty.
type WorkoutParams struct {
	Mode      string
	Equipment string
	Sort      string
	Length    *string
	Page      *string
}

// Workouts runs filter, sort and pagination in that order. The input slice is
// never reordered or modified.
func Workouts(all []models.Workout, p WorkoutParams) ([]models.Workout, error) {
	out, err := filterAndSort(all, p)
	if err != nil {
		return nil, err
	}
	return paginate(out, p.Length, p.Page)
}

// Random picks one workout uniformly from the filtered and sorted pool.
// Pagination parameters are ignored.
func Random(all []models.Workout, p WorkoutParams, r *rand.Rand) (models.Workout, error) {
	pool, err := filterAndSort(all, p)
	if err != nil {
		return models.Workout{}, err
	}
	if len(pool) == 0 {
		return models.Workout{}, apperr.NotFound("Can't find a workout matching the given filters")
	}
	var i int
	if r != nil {
		i = r.IntN(len(pool))
	} else {
		i = rand.IntN(len(pool))
	}
	return pool[i], nil
}

func filterAndSort(all []models.Workout, p WorkoutParams) ([]models.Workout, error) {
	out := make([]models.Workout, 0, len(all))
	needles := equipmentTokens(p.Equipment)
	mode := strings.ToLower(p.Mode)
	for _, w := range all {
		if mode != "" && !strings.Contains(strings.ToLower(w.Mode), mode) {
			continue
		}
		if !hasAllEquipment(w, needles) {
			continue
		}
		out = append(out, w)
	}
	if err := sortWorkouts(out, p.Sort); err != nil {
		return nil, err
	}
	return out, nil
}

func equipmentTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		if t := normalize.Text(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func hasAllEquipment(w models.Workout, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(w.Equipment))
	for _, e := range w.Equipment {
		have[strings.ToLower(e)] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := have[n]; !ok {
			return false
		}
	}
	return true
}

func sortWorkouts(ws []models.Workout, raw string) error {
	if raw == "" {
		return nil
	}
	field := strings.TrimSpace(raw)
	dir := 1
	if strings.HasPrefix(field, "-") {
		dir = -1
		field = field[1:]
	}
	if !sortFields[field] {
		return apperr.InvalidSort(field)
	}

	type keyed struct {
		w  models.Workout
		ts int64
	}
	dated := field == "createdAt" || field == "updatedAt"
	items := make([]keyed, len(ws))
	for i, w := range ws {
		items[i] = keyed{w: w}
		if dated {
			items[i].ts = timestamp(dateField(w, field))
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if dated {
			return (items[i].ts-items[j].ts)*int64(dir) < 0
		}
		return compareText(textField(items[i].w, field), textField(items[j].w, field), dir) < 0
	})
	for i := range items {
		ws[i] = items[i].w
	}
	return nil
}

// compareText orders two normalized values. Empty counts as missing: missing
// on the left sorts after, missing on the right sorts before, each scaled by dir.
func compareText(a, b string, dir int) int {
	a, b = normalize.Text(a), normalize.Text(b)
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return dir
	case b == "":
		return -dir
	case a == b:
		return 0
	case a > b:
		return dir
	default:
		return -dir
	}
}

func textField(w models.Workout, field string) string {
	if field == "mode" {
		return w.Mode
	}
	return w.Name
}

func dateField(w models.Workout, field string) string {
	if field == "updatedAt" {
		return w.UpdatedAt
	}
	return w.CreatedAt
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
}

// timestamp returns unix milliseconds, or 0 when the value does not parse.
func timestamp(v string) int64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

func paginate(ws []models.Workout, lengthParam, pageParam *string) ([]models.Workout, error) {
	var size, page int
	var err error
	if lengthParam != nil {
		if size, err = positiveInt(*lengthParam); err != nil {
			return nil, apperr.InvalidPagination("length")
		}
	}
	if pageParam != nil {
		if page, err = positiveInt(*pageParam); err != nil {
			return nil, apperr.InvalidPagination("page")
		}
	}

	switch {
	case page > 0:
		if size == 0 {
			size = DefaultPageSize
		}
		// compare page counts first; (page-1)*size can overflow int
		pages := len(ws) / size
		if len(ws)%size != 0 {
			pages++
		}
		if page > pages {
			return []models.Workout{}, nil
		}
		start := (page - 1) * size
		end := start + min(size, len(ws)-start)
		return ws[start:end], nil
	case size > 0:
		return ws[:min(size, len(ws))], nil
	}
	return ws, nil
}

func positiveInt(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
