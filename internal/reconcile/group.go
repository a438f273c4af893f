package reconcile

import (
	"github.com/sells-group/loanops/internal/model"
)

type locationKey struct {
	address string
	kind    string
}

// personGroup accumulates one person and the natural keys of its children.
type personGroup struct {
	person    model.Person
	locations map[locationKey]struct{}
	emails    map[string]struct{}
}

// grouper folds flat banker-check rows into persons and checks. Persons and
// checks are kept in arenas indexed by id so emission follows first-seen
// order.
type grouper struct {
	persons     []*personGroup
	personIndex map[string]int
	checks      []model.BankerCheck
	checkIndex  map[string]int
}

func newGrouper() *grouper {
	return &grouper{
		personIndex: make(map[string]int),
		checkIndex:  make(map[string]int),
	}
}

func (g *grouper) add(r model.BankerCheckRow) {
	if r.PersonID != "" {
		pg := g.person(r.PersonID, r.ClientID)
		if r.AddressLine1 != "" {
			k := locationKey{address: r.AddressLine1, kind: r.LocationType}
			if _, ok := pg.locations[k]; !ok {
				pg.locations[k] = struct{}{}
				pg.person.Locations = append(pg.person.Locations, model.Location{
					AddressLine1: r.AddressLine1,
					LocationType: r.LocationType,
				})
			}
		}
		if r.EmailID != "" {
			if _, ok := pg.emails[r.EmailID]; !ok {
				pg.emails[r.EmailID] = struct{}{}
				pg.person.Emails = append(pg.person.Emails, model.Email{EmailID: r.EmailID})
			}
		}
	}

	if r.BankerCheckID != "" {
		if _, ok := g.checkIndex[r.BankerCheckID]; !ok {
			g.checkIndex[r.BankerCheckID] = len(g.checks)
			g.checks = append(g.checks, model.BankerCheck{ID: r.BankerCheckID, Severity: r.Severity})
		}
	}
}

func (g *grouper) person(id, clientID string) *personGroup {
	if i, ok := g.personIndex[id]; ok {
		return g.persons[i]
	}
	pg := &personGroup{
		person: model.Person{
			ID:        id,
			ClientID:  clientID,
			Locations: []model.Location{},
			Emails:    []model.Email{},
		},
		locations: make(map[locationKey]struct{}),
		emails:    make(map[string]struct{}),
	}
	g.personIndex[id] = len(g.persons)
	g.persons = append(g.persons, pg)
	return pg
}

func (g *grouper) Persons() []model.Person {
	out := make([]model.Person, 0, len(g.persons))
	for _, pg := range g.persons {
		out = append(out, pg.person)
	}
	return out
}

func (g *grouper) Checks() []model.BankerCheck {
	out := make([]model.BankerCheck, len(g.checks))
	copy(out, g.checks)
	return out
}

// groupBankerRows groups rows by person and banker check.
func groupBankerRows(rows []model.BankerCheckRow) ([]model.Person, []model.BankerCheck) {
	g := newGrouper()
	for _, r := range rows {
		g.add(r)
	}
	return g.Persons(), g.Checks()
}
