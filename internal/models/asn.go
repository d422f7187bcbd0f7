package models

import (
	"time"

	"github.com/bkpsdm/asn-monitor-api/pkg/schedule"
)

// ASN is one civil servant personnel record. The two jadwal fields are
// derived from their riwayat counterparts and are never written
// independently; RecomputeSchedules is the single place that fills them.
type ASN struct {
	ID                      int64         `db:"id" json:"id"`
	Nama                    string        `db:"nama" json:"nama"`
	NIP                     string        `db:"nip" json:"nip"`
	TmtPNS                  schedule.Date `db:"tmt_pns" json:"tmt_pns"`
	RiwayatTmtKGB           schedule.Date `db:"riwayat_tmt_kgb" json:"riwayat_tmt_kgb"`
	RiwayatTmtPangkat       schedule.Date `db:"riwayat_tmt_pangkat" json:"riwayat_tmt_pangkat"`
	JadwalKGBBerikutnya     schedule.Date `db:"jadwal_kgb_berikutnya" json:"jadwal_kgb_berikutnya"`
	JadwalPangkatBerikutnya schedule.Date `db:"jadwal_pangkat_berikutnya" json:"jadwal_pangkat_berikutnya"`
	CreatedAt               time.Time     `db:"created_at" json:"created_at"`
}

// RecomputeSchedules refreshes both derived milestone dates from their
// source dates. Both the create and the update path must call this before
// persisting, in the same operation as the triggering write.
func (a *ASN) RecomputeSchedules() {
	a.JadwalKGBBerikutnya = schedule.NextKGB(a.RiwayatTmtKGB)
	a.JadwalPangkatBerikutnya = schedule.NextPangkat(a.RiwayatTmtPangkat)
}

// ASNFilter captures listing options.
type ASNFilter struct {
	Search   string
	Page     int
	PageSize int
}
