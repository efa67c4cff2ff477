package deck

import (
	"encoding/json"
	"strconv"
)

// Anki collection schema, version 11. The layout matches what Anki itself
// creates for an empty collection, so the resulting .apkg imports into any
// recent client.
const schemaSQL = `
CREATE TABLE col (
    id integer primary key,
    crt integer not null,
    mod integer not null,
    scm integer not null,
    ver integer not null,
    dty integer not null,
    usn integer not null,
    ls integer not null,
    conf text not null,
    models text not null,
    decks text not null,
    dconf text not null,
    tags text not null
);
CREATE TABLE notes (
    id integer primary key,
    guid text not null,
    mid integer not null,
    mod integer not null,
    usn integer not null,
    tags text not null,
    flds text not null,
    sfld integer not null,
    csum integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE cards (
    id integer primary key,
    nid integer not null,
    did integer not null,
    ord integer not null,
    mod integer not null,
    usn integer not null,
    type integer not null,
    queue integer not null,
    due integer not null,
    ivl integer not null,
    factor integer not null,
    reps integer not null,
    lapses integer not null,
    left integer not null,
    odue integer not null,
    odid integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE revlog (
    id integer primary key,
    cid integer not null,
    usn integer not null,
    ease integer not null,
    ivl integer not null,
    lastIvl integer not null,
    factor integer not null,
    time integer not null,
    type integer not null
);
CREATE TABLE graves (
    usn integer not null,
    oid integer not null,
    type integer not null
);
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`

// Collection-level configuration blobs. Anki stores these as JSON text
// columns in the single col row.
const colConfJSON = `{
  "activeDecks": [1],
  "curDeck": 1,
  "newSpread": 0,
  "collapseTime": 1200,
  "timeLim": 0,
  "estTimes": true,
  "dueCounts": true,
  "curModel": "1607392319",
  "nextPos": 1,
  "sortType": "noteFld",
  "sortBackwards": false,
  "addToCur": true,
  "dayLearnFirst": false
}`

const dconfJSON = `{
  "1": {
    "id": 1,
    "name": "Default",
    "new": {"delays": [1, 10], "ints": [1, 4, 7], "initialFactor": 2500, "separate": true, "order": 1, "perDay": 20, "bury": false},
    "lapse": {"delays": [10], "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0},
    "rev": {"perDay": 200, "ease4": 1.3, "fuzz": 0.05, "minSpace": 1, "ivlFct": 1, "maxIvl": 36500, "bury": false, "hardFactor": 1.2},
    "maxTaken": 60,
    "timer": 0,
    "autoplay": true,
    "replayq": true,
    "mod": 0,
    "usn": 0
  }
}`

const modelCSS = ".card {\n font-family: arial;\n font-size: 20px;\n text-align: center;\n color: black;\n background-color: white;\n}\n"

const latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
	"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
	"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"

const latexPost = "\\end{document}"

type modelField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type modelTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type noteModel struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	Sortf     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Tmpls     []modelTemplate `json:"tmpls"`
	Flds      []modelField    `json:"flds"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	Req       [][]interface{} `json:"req"`
	Tags      []string        `json:"tags"`
	Vers      []string        `json:"vers"`
}

type deckEntry struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Desc             string  `json:"desc"`
	Usn              int     `json:"usn"`
	Collapsed        bool    `json:"collapsed"`
	BrowserCollapsed bool    `json:"browserCollapsed"`
	NewToday         [2]int  `json:"newToday"`
	RevToday         [2]int  `json:"revToday"`
	LrnToday         [2]int  `json:"lrnToday"`
	TimeToday        [2]int  `json:"timeToday"`
	Dyn              int     `json:"dyn"`
	ExtendNew        int     `json:"extendNew"`
	ExtendRev        int     `json:"extendRev"`
	Conf             int64   `json:"conf"`
	Mod              int64   `json:"mod"`
}

func newField(name string, ord int) modelField {
	return modelField{
		Name:  name,
		Ord:   ord,
		Font:  "Arial",
		Size:  20,
		Media: []string{},
	}
}

// buildModelsJSON builds the models blob: one two-field model with a
// single card template. Front shows the term; the back repeats the front
// above a separator followed by the definition.
func buildModelsJSON() (string, error) {
	model := noteModel{
		ID:    modelID,
		Name:  "Startup Terms Model",
		Did:   deckID,
		Tmpls: []modelTemplate{{
			Name: "Card 1",
			Qfmt: "{{Term}}",
			Afmt: "{{FrontSide}}<hr id=\"answer\">{{Definition}}",
		}},
		Flds: []modelField{
			newField("Term", 0),
			newField("Definition", 1),
		},
		CSS:       modelCSS,
		LatexPre:  latexPre,
		LatexPost: latexPost,
		Req:       [][]interface{}{{0, "all", []int{0}}},
		Tags:      []string{},
		Vers:      []string{},
	}

	models := map[string]noteModel{
		strconv.FormatInt(modelID, 10): model,
	}
	raw, err := json.Marshal(models)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// buildDecksJSON builds the decks blob: Anki's mandatory default deck plus
// the deck holding the generated cards.
func buildDecksJSON(deckName string) (string, error) {
	decks := map[string]deckEntry{
		"1": {
			ID:   1,
			Name: "Default",
			Conf: 1,
		},
		strconv.FormatInt(deckID, 10): {
			ID:   deckID,
			Name: deckName,
			Conf: 1,
		},
	}
	raw, err := json.Marshal(decks)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
