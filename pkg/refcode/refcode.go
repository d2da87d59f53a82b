// Package refcode generates human-readable reference codes of the form
// <PREFIX><seq>-<YYMMDD>, e.g. DPD42-240115. Sequences are per prefix,
// strictly increasing, and survive restarts: they come from a counter row
// incremented inside the caller's transaction, so concurrent inserts cannot
// mint the same code.
package refcode

import (
	"errors"
	"fmt"
	"time"

	"gogett/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Next reserves the next sequence number for prefix and formats the code.
// tx must be an open transaction; if it rolls back, the sequence increment
// rolls back with it.
func Next(tx *gorm.DB, prefix string) (string, error) {
	seq, err := nextSeq(tx, prefix)
	if err != nil {
		return "", err
	}
	return Format(prefix, seq, time.Now()), nil
}

// Format renders a reference code for a known sequence number.
func Format(prefix string, seq uint64, t time.Time) string {
	return fmt.Sprintf("%s%d-%s", prefix, seq, t.Format("060102"))
}

func nextSeq(tx *gorm.DB, prefix string) (uint64, error) {
	q := tx
	// SQLite has no FOR UPDATE; its single-writer model serializes anyway.
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row models.RefSequence
	err := q.
		Where("prefix = ?", prefix).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Two transactions can both miss the counter before it exists. The
		// insert is conflict-tolerant; the loser re-reads and increments.
		row = models.RefSequence{Prefix: prefix, Seq: 1}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return 1, nil
		}
		if err := q.Where("prefix = ?", prefix).First(&row).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	row.Seq++
	if err := tx.Model(&models.RefSequence{}).
		Where("prefix = ?", prefix).
		Update("seq", row.Seq).Error; err != nil {
		return 0, err
	}
	return row.Seq, nil
}
