package services

import (
	"sort"
	"strings"

	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

// QueueProjector turns the raw queue rows of an event into the per-service
// board staff look at. It holds no state beyond the intake fallback pattern.
type QueueProjector struct {
	intakeNamePattern string
}

// NewQueueProjector creates a projector. intakeNamePattern identifies the
// intake service by name when no row carries the intake flag; empty
// disables the fallback.
func NewQueueProjector(intakeNamePattern string) *QueueProjector {
	return &QueueProjector{intakeNamePattern: intakeNamePattern}
}

// Project computes the board: gate, group, sort
func (p *QueueProjector) Project(rows []*entities.QueueRow) []entities.ServiceGroup {
	isIntake := p.intakeMatcher(rows)
	gate := IntakeGate(rows, isIntake)
	groups := GroupRows(rows, gate, isIntake)
	SortGroups(groups, isIntake)
	return groups
}

// intakeMatcher prefers the explicit flag and falls back to the name
// pattern only when no row in the set carries it.
func (p *QueueProjector) intakeMatcher(rows []*entities.QueueRow) func(entities.ServiceDefinition) bool {
	for _, row := range rows {
		if row.Service.IsIntakeGate {
			return func(s entities.ServiceDefinition) bool { return s.IsIntakeGate }
		}
	}

	if len(rows) > 0 {
		log.Warn().
			Str("pattern", p.intakeNamePattern).
			Msg("no service flagged as intake gate, matching intake by name")
	}
	pattern := p.intakeNamePattern
	return func(s entities.ServiceDefinition) bool { return s.NameMatches(pattern) }
}

// IntakeGate returns the visit ids that have at least one completed intake
// entry. Those visits are visible on every other service board.
func IntakeGate(rows []*entities.QueueRow, isIntake func(entities.ServiceDefinition) bool) map[string]struct{} {
	gate := make(map[string]struct{})
	for _, row := range rows {
		if isIntake(row.Service) && row.Entry.Status == entities.QueueStatusCompleted {
			gate[row.Entry.PatientVisitID] = struct{}{}
		}
	}
	return gate
}

// GroupRows buckets rows by service. Intake rows are always kept; other rows
// only when their visit is in gate. Groups come out in order of first
// appearance and rows keep their input order.
func GroupRows(rows []*entities.QueueRow, gate map[string]struct{}, isIntake func(entities.ServiceDefinition) bool) []entities.ServiceGroup {
	groups := make([]entities.ServiceGroup, 0)
	index := make(map[string]int)

	for _, row := range rows {
		if !isIntake(row.Service) {
			if _, open := gate[row.Entry.PatientVisitID]; !open {
				continue
			}
		}

		i, ok := index[row.Entry.ServiceID]
		if !ok {
			i = len(groups)
			index[row.Entry.ServiceID] = i
			groups = append(groups, entities.ServiceGroup{
				Service:  row.Service,
				Patients: make([]entities.QueueRow, 0),
			})
		}
		groups[i].Patients = append(groups[i].Patients, *row)
	}
	return groups
}

// SortGroups orders the board in place: the intake group first, the rest by
// name ignoring case. Within a group, rows go by status rank then queue
// position. Both sorts are stable.
func SortGroups(groups []entities.ServiceGroup, isIntake func(entities.ServiceDefinition) bool) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Service, groups[j].Service
		if ai, bi := isIntake(a), isIntake(b); ai != bi {
			return ai
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	for _, group := range groups {
		patients := group.Patients
		sort.SliceStable(patients, func(i, j int) bool {
			a, b := &patients[i].Entry, &patients[j].Entry
			if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
				return ra < rb
			}
			return a.Position() < b.Position()
		})
	}
}
