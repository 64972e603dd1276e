package schoolapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	peopleModel "github.com/AungS8430/schooler/internals/features/school/people/model"
	resModel "github.com/AungS8430/schooler/internals/features/school/resources/model"
	ttModel "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
)

/* ===================== ENVELOPES ===================== */

type permissionsEnvelope struct {
	Permissions authModel.Permissions `json:"permissions"`
}

type slotsEnvelope struct {
	Slots []ttModel.Slot `json:"slots"`
}

type timetableEnvelope struct {
	Timetable json.RawMessage `json:"timetable"`
}

type announcementIDsEnvelope struct {
	IDs []int `json:"announcement_ids"`
}

type announcementEnvelope struct {
	Announcement annModel.Announcement `json:"announcement"`
}

type usersEnvelope struct {
	Users []peopleModel.Person `json:"users"`
}

type gradesEnvelope struct {
	Grades map[string]string `json:"grades"`
}

type classesEnvelope struct {
	Classes []string `json:"classes"`
}

/* ===================== DECODERS ===================== */

// decodeTimetable accepts [{ "1": [...] }] (first element wins) or a bare
// { "1": [...] } object. Keys are weekday numbers or English day names.
func decodeTimetable(raw []byte) (ttModel.Timetable, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ttModel.Timetable{}, nil
	}

	var byKey map[string][]ttModel.Subject
	if raw[0] == '[' {
		var list []map[string][]ttModel.Subject
		if err := sonic.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("timetable: %w", err)
		}
		if len(list) == 0 {
			return ttModel.Timetable{}, nil
		}
		byKey = list[0]
	} else if err := sonic.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}

	out := make(ttModel.Timetable, len(byKey))
	for k, subjects := range byKey {
		day, ok := parseWeekday(k)
		if !ok {
			continue
		}
		out[day] = append(out[day], subjects...)
	}
	return out, nil
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n <= 6 {
			return time.Weekday(n), true
		}
		return 0, false
	}
	for _, d := range ttModel.Days {
		if strings.EqualFold(d.String(), s) || strings.EqualFold(d.String()[:3], s) {
			return d, true
		}
	}
	return 0, false
}

// decodeResources accepts a list, {"resources": [...]}, or one object.
func decodeResources(raw []byte) ([]resModel.Resource, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []resModel.Resource
		if err := sonic.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("resources: %w", err)
		}
		return list, nil
	}

	var wrapped struct {
		Resources *[]resModel.Resource `json:"resources"`
	}
	if err := sonic.Unmarshal(raw, &wrapped); err == nil && wrapped.Resources != nil {
		return *wrapped.Resources, nil
	}

	var one resModel.Resource
	if err := sonic.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	if one.Title == "" && one.URL == "" {
		return nil, nil
	}
	return []resModel.Resource{one}, nil
}

// sortedGrades orders grade keys numerically when they are numbers.
func sortedGrades(m map[string]string) []peopleModel.Grade {
	out := make([]peopleModel.Grade, 0, len(m))
	for k, v := range m {
		out = append(out, peopleModel.Grade{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i].Key)
		b, errB := strconv.Atoi(out[j].Key)
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}
