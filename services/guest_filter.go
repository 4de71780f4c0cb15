package services

import (
	"fmt"
	"strings"

	"github.com/L1quidL1ght/glimpse/models"
	"gorm.io/gorm"
)

// GuestFilters holds the active search dimensions. Dimensions combine
// with AND semantics: a guest must match every active one.
type GuestFilters struct {
	Tag              string
	BirthdayMonth    int // 1-12, 0 = inactive
	AnniversaryMonth int
	Name             string
}

func (f GuestFilters) Active() bool {
	return f.Tag != "" || f.BirthdayMonth > 0 || f.AnniversaryMonth > 0 || strings.TrimSpace(f.Name) != ""
}

type GuestFilter struct {
	DB *gorm.DB
}

func NewGuestFilter(db *gorm.DB) *GuestFilter {
	return &GuestFilter{DB: db}
}

// Apply returns the matching guests. With no active filter it is a
// plain ordered list; otherwise each dimension is resolved server-side
// and the id sets are intersected, keeping the order of the first
// dimension.
func (gf *GuestFilter) Apply(filters GuestFilters) ([]models.Guest, error) {
	if !filters.Active() {
		var guests []models.Guest
		if err := gf.DB.Order("name ASC").Find(&guests).Error; err != nil {
			return nil, err
		}
		return guests, nil
	}

	var idSets [][]uint

	if filters.Tag != "" {
		ids, err := gf.guestsByTag(filters.Tag)
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}
	if filters.BirthdayMonth > 0 {
		ids, err := gf.guestsByDateMonth(models.DateLabelBirthday, filters.BirthdayMonth)
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}
	if filters.AnniversaryMonth > 0 {
		ids, err := gf.guestsByDateMonth(models.DateLabelAnniversary, filters.AnniversaryMonth)
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}
	if name := strings.TrimSpace(filters.Name); name != "" {
		ids, err := gf.guestsByName(name)
		if err != nil {
			return nil, err
		}
		idSets = append(idSets, ids)
	}

	ids := intersect(idSets)
	if len(ids) == 0 {
		return []models.Guest{}, nil
	}

	var guests []models.Guest
	if err := gf.DB.Where("id IN ?", ids).Find(&guests).Error; err != nil {
		return nil, err
	}

	// Find does not preserve the IN order; restore the first
	// dimension's ordering.
	byID := make(map[uint]models.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}
	ordered := make([]models.Guest, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			ordered = append(ordered, g)
		}
	}
	return ordered, nil
}

func (gf *GuestFilter) guestsByTag(tag string) ([]uint, error) {
	var ids []uint
	err := gf.DB.Model(&models.GuestTag{}).
		Where("tag = ?", tag).
		Order("guest_id ASC").
		Distinct().
		Pluck("guest_id", &ids).Error
	return ids, err
}

func (gf *GuestFilter) guestsByDateMonth(label string, month int) ([]uint, error) {
	var ids []uint
	err := gf.DB.Model(&models.ImportantDate{}).
		Where("label = ? AND month_day LIKE ?", label, fmt.Sprintf("%02d-%%", month)).
		Order("guest_id ASC").
		Distinct().
		Pluck("guest_id", &ids).Error
	return ids, err
}

func (gf *GuestFilter) guestsByName(name string) ([]uint, error) {
	var ids []uint
	err := gf.DB.Model(&models.Guest{}).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// intersect keeps ids present in every set, deduplicated, in the order
// of the first set.
func intersect(sets [][]uint) []uint {
	if len(sets) == 0 {
		return nil
	}

	out := make([]uint, 0, len(sets[0]))
	seen := make(map[uint]bool, len(sets[0]))
	for _, id := range sets[0] {
		if seen[id] {
			continue
		}
		seen[id] = true

		inAll := true
		for _, set := range sets[1:] {
			found := false
			for _, other := range set {
				if other == id {
					found = true
					break
				}
			}
			if !found {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out
}
