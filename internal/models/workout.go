package models

type Workout struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Mode        string   `json:"mode"`
	Equipment   []string `json:"equipment"`
	Exercises   []string `json:"exercises"`
	TrainerTips []string `json:"trainerTips"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type NewWorkout struct {
	Name        string   `json:"name"`
	Mode        string   `json:"mode"`
	Equipment   []string `json:"equipment"`
	Exercises   []string `json:"exercises"`
	TrainerTips []string `json:"trainerTips"`
}

// WorkoutPatch has no id or timestamp fields: clients cannot set them.
type WorkoutPatch struct {
	Name        *string   `json:"name"`
	Mode        *string   `json:"mode"`
	Equipment   *[]string `json:"equipment"`
	Exercises   *[]string `json:"exercises"`
	TrainerTips *[]string `json:"trainerTips"`
}

func (p WorkoutPatch) Apply(w Workout) Workout {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Mode != nil {
		w.Mode = *p.Mode
	}
	if p.Equipment != nil {
		w.Equipment = cloneStrings(*p.Equipment)
	}
	if p.Exercises != nil {
		w.Exercises = cloneStrings(*p.Exercises)
	}
	if p.TrainerTips != nil {
		w.TrainerTips = cloneStrings(*p.TrainerTips)
	}
	return w
}

// Clone returns a copy that shares no slices with w.
func (w Workout) Clone() Workout {
	w.Equipment = cloneStrings(w.Equipment)
	w.Exercises = cloneStrings(w.Exercises)
	w.TrainerTips = cloneStrings(w.TrainerTips)
	return w
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
