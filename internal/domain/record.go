package domain

import (
	"encoding/json"
	"strconv"
)

// Record est un objet JSON déjà décodé, tel que renvoyé par le transport catalogue.
// Les accesseurs sont tolérants: un champ absent ou d'un autre type donne la valeur zéro.
type Record map[string]any

// Get descend dans les sous-objets en suivant keys.
func (r Record) Get(keys ...string) any {
	var cur any = map[string]any(r)
	for _, k := range keys {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

func (r Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r[key]
	return ok
}

func (r Record) Obj(keys ...string) Record {
	m, _ := asMap(r.Get(keys...))
	return Record(m)
}

func (r Record) Str(keys ...string) string {
	switch v := r.Get(keys...).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Int64 accepte un nombre JSON ou une chaîne numérique (l'API renvoie les statistiques en chaînes).
func (r Record) Int64(keys ...string) int64 {
	switch v := r.Get(keys...).(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (r Record) List(keys ...string) []any {
	l, _ := r.Get(keys...).([]any)
	return l
}

// Records renvoie les éléments objets d'une liste, dans l'ordre; les éléments non-objets sont ignorés.
func (r Record) Records(keys ...string) []Record {
	l := r.List(keys...)
	out := make([]Record, 0, len(l))
	for _, it := range l {
		if m, ok := asMap(it); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}
