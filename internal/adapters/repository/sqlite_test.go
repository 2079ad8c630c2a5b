package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

var memDBSeq atomic.Int64

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", memDBSeq.Add(1))
	s, err := Open(context.Background(), dsn, WithSchema(Schema))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func insertFighter(t *testing.T, s *SQLiteStore, name, weightClass string, wins, losses, draws int, active bool) int64 {
	t.Helper()
	res, err := s.db.Exec(`
		INSERT INTO fighters (name, weight_class, record_wins, record_losses, record_draws, ko_percentage, reach, active)
		VALUES (?, ?, ?, ?, ?, 50.0, 180, ?)`,
		name, weightClass, wins, losses, draws, active)
	if err != nil {
		t.Fatalf("insert fighter %s: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("fighter id: %v", err)
	}
	return id
}

func insertFight(t *testing.T, s *SQLiteStore, date string, aID, bID, winnerID int64, method string, titleFight bool, status string) {
	t.Helper()
	var winner any
	if winnerID != 0 {
		winner = winnerID
	}
	_, err := s.db.Exec(`
		INSERT INTO fights (date, fighter1_id, fighter2_id, winner_id, method, round, title_fight, weight_class, status)
		VALUES (?, ?, ?, ?, ?, 12, ?, 'Heavyweight', ?)`,
		date, aID, bID, winner, method, titleFight, status)
	if err != nil {
		t.Fatalf("insert fight %s: %v", date, err)
	}
}

func TestFindFighterExactMatchFirst(t *testing.T) {
	s := newTestStore(t)
	insertFighter(t, s, "Ray Robinson", "Welterweight", 174, 19, 6, false)
	insertFighter(t, s, "Ray", "Lightweight", 12, 0, 0, true)

	f, err := s.FindFighter(context.Background(), "ray")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if f.Name != "Ray" {
		t.Errorf("want exact match %q, got %q", "Ray", f.Name)
	}
}

func TestFindFighterPartialMatchByWins(t *testing.T) {
	s := newTestStore(t)
	insertFighter(t, s, "Floyd Patterson", "Heavyweight", 55, 8, 1, false)
	insertFighter(t, s, "Floyd Mayweather", "Welterweight", 50, 0, 0, false)

	f, err := s.FindFighter(context.Background(), "floyd")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if f.Name != "Floyd Patterson" {
		t.Errorf("want winningest partial match, got %q", f.Name)
	}
}

func TestFindFighterNotFound(t *testing.T) {
	s := newTestStore(t)
	insertFighter(t, s, "Joe Louis", "Heavyweight", 66, 3, 0, false)

	_, err := s.FindFighter(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSearchFighters(t *testing.T) {
	s := newTestStore(t)
	insertFighter(t, s, "Oleksandr Usyk", "Heavyweight", 22, 0, 0, true)
	insertFighter(t, s, "Tyson Fury", "Heavyweight", 34, 1, 1, true)
	insertFighter(t, s, "Wladimir Klitschko", "Heavyweight", 64, 5, 0, false)
	insertFighter(t, s, "Naoya Inoue", "Super Bantamweight", 27, 0, 0, true)

	out, err := s.SearchFighters(context.Background(), SearchFilter{WeightClass: "heavyweight", ActiveOnly: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 fighters, got %d", len(out))
	}
	if out[0].Name != "Tyson Fury" {
		t.Errorf("want best record first, got %q", out[0].Name)
	}

	if _, err := s.SearchFighters(context.Background(), SearchFilter{Limit: maxSearchLimit + 1}); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("want ErrInvalidLimit, got %v", err)
	}
}

func TestFightHistoryPerspective(t *testing.T) {
	s := newTestStore(t)
	ali := insertFighter(t, s, "Muhammad Ali", "Heavyweight", 56, 5, 0, false)
	frazier := insertFighter(t, s, "Joe Frazier", "Heavyweight", 32, 4, 1, false)
	foreman := insertFighter(t, s, "George Foreman", "Heavyweight", 76, 5, 0, false)

	insertFight(t, s, "1971-03-08", frazier, ali, frazier, "UD", true, model.StatusFinished)
	insertFight(t, s, "1974-10-30", ali, foreman, ali, "KO", true, model.StatusFinished)
	insertFight(t, s, "1975-10-01", ali, frazier, ali, "RTD", true, model.StatusFinished)

	bouts, err := s.FightHistory(context.Background(), ali)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(bouts) != 3 {
		t.Fatalf("want 3 bouts, got %d", len(bouts))
	}
	if bouts[0].Result != model.Loss || bouts[0].Opponent != "Joe Frazier" {
		t.Errorf("first bout: want loss to Frazier, got %s vs %s", bouts[0].Result, bouts[0].Opponent)
	}
	if bouts[1].Result != model.Win || bouts[1].Method != model.KO {
		t.Errorf("second bout: want KO win, got %s by %s", bouts[1].Result, bouts[1].Method)
	}
	if !bouts[2].Date.After(bouts[0].Date) {
		t.Error("history must be ordered by date ascending")
	}
	if bouts[0].OpponentWins != 32 {
		t.Errorf("opponent wins: want 32, got %d", bouts[0].OpponentWins)
	}
}

func TestFightHistoryExcludesScheduled(t *testing.T) {
	s := newTestStore(t)
	a := insertFighter(t, s, "Fighter A", "Heavyweight", 10, 0, 0, true)
	b := insertFighter(t, s, "Fighter B", "Heavyweight", 8, 2, 0, true)

	insertFight(t, s, "2024-01-01", a, b, a, "UD", false, model.StatusFinished)
	insertFight(t, s, "2030-01-01", a, b, 0, "", false, model.StatusScheduled)

	bouts, err := s.FightHistory(context.Background(), a)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(bouts) != 1 {
		t.Errorf("want only finished fights, got %d", len(bouts))
	}
}

func TestSharedOpponents(t *testing.T) {
	s := newTestStore(t)
	ali := insertFighter(t, s, "Muhammad Ali", "Heavyweight", 56, 5, 0, false)
	frazier := insertFighter(t, s, "Joe Frazier", "Heavyweight", 32, 4, 1, false)
	foreman := insertFighter(t, s, "George Foreman", "Heavyweight", 76, 5, 0, false)
	norton := insertFighter(t, s, "Ken Norton", "Heavyweight", 42, 7, 1, false)

	insertFight(t, s, "1973-03-31", norton, ali, norton, "SD", false, model.StatusFinished)
	insertFight(t, s, "1974-06-26", foreman, norton, foreman, "TKO", true, model.StatusFinished)
	insertFight(t, s, "1974-10-30", ali, foreman, ali, "KO", true, model.StatusFinished)
	insertFight(t, s, "1971-03-08", frazier, ali, frazier, "UD", true, model.StatusFinished)
	insertFight(t, s, "1973-01-22", foreman, frazier, foreman, "TKO", true, model.StatusFinished)

	shared, err := s.SharedOpponents(context.Background(), ali, foreman)
	if err != nil {
		t.Fatalf("shared: %v", err)
	}
	if len(shared) != 2 {
		t.Fatalf("want 2 shared opponents, got %d", len(shared))
	}
	// Both fought Frazier and Norton; the head-to-head fight must not
	// surface either fighter as their own shared opponent.
	if shared[0].Name != "Joe Frazier" || shared[1].Name != "Ken Norton" {
		t.Errorf("want [Frazier, Norton] by name, got [%s, %s]", shared[0].Name, shared[1].Name)
	}
}

func TestFightsBetween(t *testing.T) {
	s := newTestStore(t)
	ali := insertFighter(t, s, "Muhammad Ali", "Heavyweight", 56, 5, 0, false)
	frazier := insertFighter(t, s, "Joe Frazier", "Heavyweight", 32, 4, 1, false)
	foreman := insertFighter(t, s, "George Foreman", "Heavyweight", 76, 5, 0, false)

	insertFight(t, s, "1971-03-08", frazier, ali, frazier, "UD", true, model.StatusFinished)
	insertFight(t, s, "1975-10-01", ali, frazier, ali, "RTD", true, model.StatusFinished)
	insertFight(t, s, "1974-10-30", ali, foreman, ali, "KO", true, model.StatusFinished)

	fights, err := s.FightsBetween(context.Background(), ali, frazier)
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	if len(fights) != 2 {
		t.Fatalf("want 2 fights, got %d", len(fights))
	}
	if !fights[0].Date.After(fights[1].Date) {
		t.Error("want most recent fight first")
	}
	if fights[0].WinnerID != ali {
		t.Errorf("want winner %d, got %d", ali, fights[0].WinnerID)
	}
}

func TestTitles(t *testing.T) {
	s := newTestStore(t)
	id := insertFighter(t, s, "Canelo Alvarez", "Super Middleweight", 62, 2, 2, true)

	mustExec(t, s, `INSERT INTO titles (fighter_id, title_name, won_date, lost_date, defenses_count)
		VALUES (?, 'WBC Middleweight', '2015-11-21', '2018-05-01', 2)`, id)
	mustExec(t, s, `INSERT INTO titles (fighter_id, title_name, won_date, defenses_count)
		VALUES (?, 'Undisputed Super Middleweight', '2021-11-06', 4)`, id)

	titles, err := s.Titles(context.Background(), id)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("want 2 titles, got %d", len(titles))
	}
	if !titles[0].Held() {
		t.Error("most recent title should still be held")
	}
	if titles[1].Held() {
		t.Error("lost title should not report held")
	}
	if titles[0].Defenses != 4 {
		t.Errorf("defenses: want 4, got %d", titles[0].Defenses)
	}
}

func TestUpcomingFights(t *testing.T) {
	s := newTestStore(t)
	a := insertFighter(t, s, "Fighter A", "Heavyweight", 20, 0, 0, true)
	b := insertFighter(t, s, "Fighter B", "Heavyweight", 18, 1, 0, true)
	c := insertFighter(t, s, "Fighter C", "Welterweight", 15, 0, 0, true)
	d := insertFighter(t, s, "Fighter D", "Welterweight", 14, 2, 0, true)

	soon := time.Now().UTC().AddDate(0, 0, 10).Format(dateLayout)
	far := time.Now().UTC().AddDate(0, 6, 0).Format(dateLayout)
	insertFight(t, s, soon, a, b, 0, "", true, model.StatusScheduled)
	insertFight(t, s, far, c, d, 0, "", false, model.StatusScheduled)
	insertFight(t, s, "2024-05-18", a, b, a, "UD", true, model.StatusFinished)

	fights, err := s.UpcomingFights(context.Background(), 30*24*time.Hour, "")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(fights) != 1 {
		t.Fatalf("want 1 fight inside window, got %d", len(fights))
	}
	if fights[0].Status != model.StatusScheduled {
		t.Errorf("want scheduled status, got %q", fights[0].Status)
	}

	fights, err = s.UpcomingFights(context.Background(), 365*24*time.Hour, "Welterweight")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(fights) != 1 || fights[0].FighterA != "Fighter C" {
		t.Errorf("weight class filter: want the welterweight bout, got %+v", fights)
	}
}

func mustExec(t *testing.T, s *SQLiteStore, query string, args ...any) {
	t.Helper()
	if _, err := s.db.Exec(query, args...); err != nil {
		t.Fatalf("exec: %v", err)
	}
}
