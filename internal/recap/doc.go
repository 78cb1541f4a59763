// Package recap parses CompetitionSuite recap pages into labelled score tables.
//
// A recap page carries one round's judged scores in a single table. Its first
// six rows hold the division, captions, sub-captions, judges and raw column
// headers; every following row is a band. The caption and sub-caption grouping
// of the judge columns is only expressed by position, so a Schema describes
// the known layout as blocks and rebuilds flat column names such as
// "MusEns_Mus_score" from it. Loader ties fetching, header parsing and row
// parsing together for one or many rounds.
package recap
