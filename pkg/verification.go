package pkg

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// MemberStatus is the verification result for one record member.
type MemberStatus struct {
	Name     string
	Kind     savefile.Kind
	Checksum savefile.ChecksumStatus
	Err      error // set when the member is not a decodable record
}

// OK reports whether the member decodes and its checksum is current.
func (m MemberStatus) OK() bool {
	return m.Err == nil && m.Checksum.Valid()
}

// VerificationReport lists every record member of an archive.
type VerificationReport struct {
	Members []MemberStatus
	Ignored int
}

// Failed counts members that did not verify.
func (r *VerificationReport) Failed() int {
	n := 0
	for _, m := range r.Members {
		if !m.OK() {
			n++
		}
	}
	return n
}

// Passed reports whether every record verified.
func (r *VerificationReport) Passed() bool {
	return r.Failed() == 0
}

// Err wraps ErrVerificationFailed with the failure count, or returns nil.
func (r *VerificationReport) Err() error {
	if n := r.Failed(); n > 0 {
		return fmt.Errorf("%w: %d of %d records", ErrVerificationFailed, n, len(r.Members))
	}
	return nil
}

// VerifyArchiveWithLogger checks the stored checksum of every record in an
// archive buffer. This is diagnostic only: importing does not consult it.
func VerifyArchiveWithLogger(data []byte, logger hclog.Logger) (*VerificationReport, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	members, err := archive.Read(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Verifying archive records")

	report := &VerificationReport{}
	for _, m := range members {
		kind, _, ok := savefile.ParseMemberName(m.Name)
		if !ok {
			report.Ignored++
			continue
		}

		status := MemberStatus{Name: m.Name, Kind: kind}
		status.Checksum, status.Err = savefile.VerifyChecksum(kind, m.Data)
		switch {
		case status.Err != nil:
			logger.Error("Record unreadable", "member", m.Name, "error", status.Err)
		case !status.Checksum.Valid():
			logger.Error("Checksum mismatch", "member", m.Name,
				"stored", fmt.Sprintf("0x%08x", status.Checksum.Stored),
				"computed", fmt.Sprintf("0x%08x", status.Checksum.Computed),
			)
		default:
			logger.Info("✓ Checksum valid", "member", m.Name)
		}
		report.Members = append(report.Members, status)
	}

	if report.Passed() {
		logger.Info("✓ Archive verification passed", "records", len(report.Members))
	} else {
		logger.Error("✗ Archive verification failed", "error_count", report.Failed())
	}
	return report, nil
}

// VerifyArchive verifies with a null logger
func VerifyArchive(data []byte) (*VerificationReport, error) {
	return VerifyArchiveWithLogger(data, nil)
}
