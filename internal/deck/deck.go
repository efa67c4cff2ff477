package deck

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rohmanhakim/termdeck/internal/output"
	"github.com/rohmanhakim/termdeck/pkg/failure"
	"github.com/rohmanhakim/termdeck/pkg/fileutil"
	"github.com/rohmanhakim/termdeck/pkg/hashutil"
)

/*
Responsibilities
- Package the completed card list into an Anki .apkg artifact
- Keep deck, model and note identities deterministic

Artifact Layout
- .apkg is a zip archive holding collection.anki2 (an SQLite database in
  Anki's version-11 collection schema) and a media manifest
- Deck and model ids are fixed constants
- Note GUIDs and row ids are derived from the term text, so regenerating
  the deck with the same terms updates existing cards on re-import
  instead of duplicating them
*/

const (
	deckID  int64 = 2059400110
	modelID int64 = 1607392319

	// Anki joins note fields with the unit separator character.
	fieldSeparator = "\x1f"

	// Fixed collection creation epoch; crt only anchors the scheduler
	// day boundary and a constant keeps regenerated decks comparable.
	collectionCreated int64 = 1684108800
)

// Compile-time interface check
var _ output.Sink = (*Sink)(nil)

// Sink writes cards as an Anki deck package.
type Sink struct {
	deckName string
}

func NewSink(deckName string) Sink {
	return Sink{
		deckName: deckName,
	}
}

func (s Sink) Write(outputPath string, cards []output.Card) failure.ClassifiedError {
	tempDir, err := os.MkdirTemp("", "termdeck-deck-*")
	if err != nil {
		return &DeckError{
			Message: err.Error(),
			Cause:   ErrCauseCollectionBuild,
			Path:    outputPath,
		}
	}
	defer os.RemoveAll(tempDir)

	collectionPath := filepath.Join(tempDir, "collection.anki2")
	if err := s.buildCollection(collectionPath, cards); err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return &DeckError{
				Message: err.Error(),
				Cause:   ErrCauseArchiveWrite,
				Path:    outputPath,
			}
		}
	}

	return writeArchive(outputPath, collectionPath)
}

// buildCollection creates the SQLite collection database and inserts one
// note and one card per input card, in input order.
func (s Sink) buildCollection(collectionPath string, cards []output.Card) failure.ClassifiedError {
	db, err := sql.Open("sqlite", collectionPath)
	if err != nil {
		return buildError(err, collectionPath)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return buildError(err, collectionPath)
	}

	modelsJSON, err := buildModelsJSON()
	if err != nil {
		return buildError(err, collectionPath)
	}
	decksJSON, err := buildDecksJSON(s.deckName)
	if err != nil {
		return buildError(err, collectionPath)
	}

	now := time.Now()
	if _, err := db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		collectionCreated,
		now.UnixMilli(),
		now.UnixMilli(),
		colConfJSON,
		modelsJSON,
		decksJSON,
		dconfJSON,
	); err != nil {
		return buildError(err, collectionPath)
	}

	tx, err := db.Begin()
	if err != nil {
		return buildError(err, collectionPath)
	}

	noteStmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`)
	if err != nil {
		tx.Rollback()
		return buildError(err, collectionPath)
	}
	defer noteStmt.Close()

	cardStmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		tx.Rollback()
		return buildError(err, collectionPath)
	}
	defer cardStmt.Close()

	for i, card := range cards {
		identity, err := noteIdentity(card.Term())
		if err != nil {
			tx.Rollback()
			return buildError(err, collectionPath)
		}

		fields := card.Term() + fieldSeparator + card.Definition()
		if _, err := noteStmt.Exec(
			identity.noteID, identity.guid, modelID, now.Unix(),
			fields, card.Term(), identity.checksum,
		); err != nil {
			tx.Rollback()
			return buildError(err, collectionPath)
		}
		if _, err := cardStmt.Exec(
			identity.cardID, identity.noteID, deckID, now.Unix(), i+1,
		); err != nil {
			tx.Rollback()
			return buildError(err, collectionPath)
		}
	}

	if err := tx.Commit(); err != nil {
		return buildError(err, collectionPath)
	}
	return nil
}

type identity struct {
	guid     string
	noteID   int64
	cardID   int64
	checksum int64
}

// noteIdentity derives every identity a note needs from the term text
// alone. GUID and ids come from the term's blake3 hash; the checksum is
// the sort-field checksum Anki uses for duplicate detection (first eight
// hex digits of the SHA-1 of the first field, as an integer).
func noteIdentity(term string) (identity, error) {
	guidHex, err := hashutil.HashString(term, hashutil.HashAlgoBLAKE3)
	if err != nil {
		return identity{}, err
	}

	noteID, err := hashutil.Int63([]byte(term), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return identity{}, err
	}
	cardID, err := hashutil.Int63([]byte(term+fieldSeparator+"card"), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return identity{}, err
	}

	sortHex, err := hashutil.HashString(term, hashutil.HashAlgoSHA1)
	if err != nil {
		return identity{}, err
	}
	checksum, err := strconv.ParseInt(sortHex[:8], 16, 64)
	if err != nil {
		return identity{}, err
	}

	return identity{
		guid:     guidHex[:10],
		noteID:   noteID,
		cardID:   cardID,
		checksum: checksum,
	}, nil
}

// writeArchive zips the collection database and an empty media manifest
// into the .apkg at outputPath.
func writeArchive(outputPath string, collectionPath string) failure.ClassifiedError {
	collection, err := os.ReadFile(collectionPath)
	if err != nil {
		return archiveError(err, outputPath)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return archiveError(err, outputPath)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	entries := []struct {
		name string
		body []byte
	}{
		{"collection.anki2", collection},
		{"media", []byte("{}")},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			zw.Close()
			return archiveError(err, outputPath)
		}
		if _, err := w.Write(entry.body); err != nil {
			zw.Close()
			return archiveError(err, outputPath)
		}
	}
	if err := zw.Close(); err != nil {
		return archiveError(err, outputPath)
	}
	return nil
}

func buildError(err error, path string) *DeckError {
	return &DeckError{
		Message: err.Error(),
		Cause:   ErrCauseCollectionBuild,
		Path:    path,
	}
}

func archiveError(err error, path string) *DeckError {
	return &DeckError{
		Message: err.Error(),
		Cause:   ErrCauseArchiveWrite,
		Path:    path,
	}
}
