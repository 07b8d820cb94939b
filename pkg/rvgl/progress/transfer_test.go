package progress

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/rvglsave/pkg/rvgl/archive"
	rverrors "github.com/provide-io/rvglsave/pkg/rvgl/errors"
	"github.com/provide-io/rvglsave/pkg/rvgl/savefile"
)

// scenarioMembers builds a garden1.level with secrets 0x80000003 and a
// stunts.stunt with 20 total stars and stars 0 and 5 found.
func scenarioMembers() []archive.Member {
	level := &savefile.LevelRecord{Profile: "Player", InnerName: "Garden1"}
	level.Flags[0], level.Flags[1] = true, true

	stunt := &savefile.StuntRecord{Profile: "Player", InnerName: "stunts", Total: 20}
	stunt.Stars[0], stunt.Stars[5] = true, true

	return []archive.Member{
		{Name: "garden1.level", Data: level.Pack()},
		{Name: "stunts.stunt", Data: stunt.Pack()},
	}
}

func TestImportScenario(t *testing.T) {
	members := scenarioMembers()
	require.Equal(t, uint32(0x80000003), binary.LittleEndian.Uint32(members[0].Data[savefile.LevelSecretsOffset:]))

	s := testSession()
	report := s.Import(members)

	assert.Equal(t, 1, report.Levels)
	assert.Equal(t, 1, report.Stunts)
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.Ignored)
	assert.Equal(t, "Player", s.ProfileName())
	assert.Equal(t, Selection{Kind: savefile.KindLevel, Name: "garden1"}, s.Selection())

	level, ok := s.Level("garden1")
	require.True(t, ok)
	assert.Equal(t, "Garden1", level.InnerName)
	assert.Equal(t, [savefile.FlagCount]bool{true, true, false, false, false, false}, level.Flags)

	stunt, ok := s.Stunt("stunts")
	require.True(t, ok)
	assert.Equal(t, 20, stunt.TotalStars)
	for i := 0; i < savefile.MaxStars; i++ {
		assert.Equal(t, i == 0 || i == 5, stunt.Stars[i], "star %d", i)
	}

	assert.Equal(t, members, s.Export(), "unchanged import must re-export byte for byte")
}

func TestImportSkipsBadMagic(t *testing.T) {
	bad := (&savefile.LevelRecord{InnerName: "broken"}).Pack()
	copy(bad, "NOT A SAVE FILE....")

	members := append([]archive.Member{{Name: "broken.level", Data: bad}}, scenarioMembers()...)
	members = append(members, archive.Member{Name: "short.stunt", Data: []byte{1, 2, 3}})

	s := testSession()
	report := s.Import(members)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, "broken.level", report.Failures[0].Path)
	assert.ErrorIs(t, report.Failures[0], rverrors.ErrInvalidMagic)
	assert.Equal(t, "short.stunt", report.Failures[1].Path)
	assert.ErrorIs(t, report.Failures[1], rverrors.ErrRecordTooShort)

	var fe *rverrors.FormatError
	assert.True(t, errors.As(report.Failures[0], &fe))

	assert.Equal(t, 2, report.Imported())
	assert.False(t, s.Has(savefile.KindLevel, "broken"))
	assert.True(t, s.Has(savefile.KindLevel, "garden1"))
	assert.True(t, s.Has(savefile.KindStunt, "stunts"))
}

func TestImportReplacesContents(t *testing.T) {
	s := testSession()
	s.LoadStockPreset()

	s.Import(scenarioMembers())

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has(savefile.KindLevel, "roof"))
}

func TestImportIgnoresOtherMembersAndStripsDirs(t *testing.T) {
	members := []archive.Member{
		{Name: "readme.txt", Data: []byte("hi")},
		{Name: "profiles/Bob/stunts.stunt", Data: (&savefile.StuntRecord{Profile: "Bob", Total: 3}).Pack()},
		{Name: `profiles\Bob\roof.level`, Data: (&savefile.LevelRecord{Profile: "Other"}).Pack()},
	}

	s := testSession()
	report := s.Import(members)

	assert.Equal(t, []string{"readme.txt"}, report.Ignored)
	assert.True(t, s.Has(savefile.KindStunt, "stunts"))
	assert.True(t, s.Has(savefile.KindLevel, "roof"))
	assert.Equal(t, "Bob", s.ProfileName(), "profile comes from the first decoded record")
	assert.Equal(t, Selection{Kind: savefile.KindLevel, Name: "roof"}, s.Selection(), "levels win the selection")
}

func TestImportCountsDuplicateNamesOnce(t *testing.T) {
	first := &savefile.LevelRecord{Profile: "Player", InnerName: "First"}
	second := &savefile.LevelRecord{Profile: "Player", InnerName: "Second"}
	second.Flags[2] = true

	members := []archive.Member{
		{Name: "a/garden1.level", Data: first.Pack()},
		{Name: "b/garden1.level", Data: second.Pack()},
		{Name: "a/stunts.stunt", Data: (&savefile.StuntRecord{Total: 4}).Pack()},
		{Name: "b/stunts.stunt", Data: (&savefile.StuntRecord{Total: 9}).Pack()},
	}

	s := testSession()
	report := s.Import(members)

	assert.Equal(t, 1, report.Levels)
	assert.Equal(t, 1, report.Stunts)
	assert.Equal(t, s.Len(), report.Imported())
	assert.Equal(t, []string{"garden1.level", "stunts.stunt"}, report.Duplicates)

	lv, ok := s.Level("garden1")
	require.True(t, ok)
	assert.Equal(t, "Second", lv.InnerName, "the later member wins")
	assert.True(t, lv.Flags[2])

	st, _ := s.Stunt("stunts")
	assert.Equal(t, 9, st.TotalStars)
}

func TestImportWithoutRecordsKeepsProfile(t *testing.T) {
	s := testSession()
	s.SetProfileName("Player")

	report := s.Import([]archive.Member{{Name: "notes.md", Data: nil}})

	assert.Equal(t, 0, report.Imported())
	assert.Equal(t, "Player", s.ProfileName())
	assert.True(t, s.Selection().IsEmpty())
}

func TestImportKeepsOutOfRangeTotal(t *testing.T) {
	buf := (&savefile.StuntRecord{Total: 99}).Pack()

	s := testSession()
	s.Import([]archive.Member{{Name: "odd.stunt", Data: buf}})

	st, ok := s.Stunt("odd")
	require.True(t, ok)
	assert.Equal(t, 99, st.TotalStars)
	assert.Equal(t, buf, s.Export()[0].Data)

	st, err := s.SetTotalStars("odd", st.TotalStars)
	require.NoError(t, err)
	assert.Equal(t, savefile.MaxStars, st.TotalStars)
}

func TestExportOrderAndNames(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Add(savefile.KindStunt, "arena"))
	require.NoError(t, s.Add(savefile.KindLevel, "toy2"))
	require.NoError(t, s.Add(savefile.KindLevel, "roof"))

	var names []string
	for _, m := range s.Export() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"toy2.level", "roof.level", "arena.stunt"}, names)
}

func TestExportChecksumsAndSecrets(t *testing.T) {
	s := testSession()
	s.SetProfileName("Player")
	_, err := s.AddLevel("muse2")
	require.NoError(t, err)
	_, err = s.SetFlag("muse2", 3, true)
	require.NoError(t, err)

	members := s.Export()
	require.Len(t, members, 1)
	data := members[0].Data

	assert.Equal(t, uint32(0x80000008), binary.LittleEndian.Uint32(data[savefile.LevelSecretsOffset:]))
	status, err := savefile.VerifyChecksum(savefile.KindLevel, data)
	require.NoError(t, err)
	assert.True(t, status.Valid())
}

func TestEditRoundTrip(t *testing.T) {
	s := testSession()
	s.Import(scenarioMembers())

	_, err := s.SetTotalStars("stunts", 4)
	require.NoError(t, err)
	_, err = s.SetStar("stunts", 3, true)
	require.NoError(t, err)
	_, err = s.SetFlag("garden1", 5, true)
	require.NoError(t, err)

	again := testSession()
	again.Import(s.Export())

	st, _ := again.Stunt("stunts")
	assert.Equal(t, 4, st.TotalStars)
	var want [savefile.MaxStars]bool
	want[0], want[3] = true, true
	assert.Equal(t, want, st.Stars, "star 5 was cleared by the lower total")

	lv, _ := again.Level("garden1")
	assert.Equal(t, [savefile.FlagCount]bool{true, true, false, false, false, true}, lv.Flags)
}

func TestEncodeEntry(t *testing.T) {
	s := testSession()
	s.Import(scenarioMembers())

	data, err := s.EncodeEntry(savefile.KindStunt, "stunts")
	require.NoError(t, err)
	assert.Equal(t, scenarioMembers()[1].Data, data)

	_, err = s.EncodeEntry(savefile.KindLevel, "stunts")
	assert.ErrorIs(t, err, rverrors.ErrUnknownEntry)
}
