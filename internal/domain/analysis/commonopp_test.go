package analysis

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringside/internal/domain/model"
)

func boutAgainst(oppID int64, opp string, result model.Result, method model.Method, year int) model.Bout {
	return model.Bout{
		Date:       time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Result:     result,
		Method:     method,
		OpponentID: oppID,
		Opponent:   opp,
	}
}

func TestCommonOpponents(t *testing.T) {
	Convey("Given a metric engine with default confidence parameters", t, func() {
		e := NewEngine()

		Convey("When one shared opponent separates a knockout win from a decision loss", func() {
			boutsA := []model.Bout{boutAgainst(7, "George Chuvalo", model.Win, model.TKO, 1966)}
			boutsB := []model.Bout{boutAgainst(7, "George Chuvalo", model.Loss, model.UnanimD, 1967)}

			res, err := e.CommonOpponents("Ali", boutsA, "Terrell", boutsB)

			Convey("Then the knockout winner takes the advantage", func() {
				So(err, ShouldBeNil)
				So(res.SharedOpponents, ShouldEqual, 1)
				So(res.ScoreA, ShouldEqual, 4)
				So(res.ScoreB, ShouldEqual, 1)
				So(res.Advantage, ShouldEqual, "Ali")
				So(res.Details[0].Advantage, ShouldEqual, "Ali")
			})

			Convey("Then a single data point caps the confidence below the maximum", func() {
				So(res.Confidence, ShouldEqual, 0.6)
				So(res.Confidence, ShouldBeLessThan, defaultMaxConfidence)
			})
		})

		Convey("When the same score gap spreads over more shared opponents", func() {
			one, err := e.CommonOpponents("A",
				[]model.Bout{boutAgainst(1, "Opp1", model.Win, model.KO, 2010)},
				"B",
				[]model.Bout{boutAgainst(1, "Opp1", model.Loss, model.UnanimD, 2010)},
			)
			So(err, ShouldBeNil)

			two, err := e.CommonOpponents("A",
				[]model.Bout{
					boutAgainst(1, "Opp1", model.Win, model.KO, 2010),
					boutAgainst(2, "Opp2", model.Win, model.UnanimD, 2011),
				},
				"B",
				[]model.Bout{
					boutAgainst(1, "Opp1", model.Loss, model.UnanimD, 2010),
					boutAgainst(2, "Opp2", model.Win, model.UnanimD, 2011),
				},
			)
			So(err, ShouldBeNil)

			Convey("Then the confidence ceiling rises with overlap", func() {
				So(two.Confidence, ShouldBeGreaterThan, one.Confidence)
			})
		})

		Convey("When both fighters scored identically against the overlap", func() {
			boutsA := []model.Bout{boutAgainst(3, "Opp", model.Win, model.UnanimD, 2012)}
			boutsB := []model.Bout{boutAgainst(3, "Opp", model.Win, model.SplitD, 2013)}

			res, err := e.CommonOpponents("A", boutsA, "B", boutsB)

			So(err, ShouldBeNil)
			So(res.Advantage, ShouldEqual, AdvantageEven)
			So(res.Confidence, ShouldEqual, defaultConfidenceBase)
		})

		Convey("When there is no overlap at all", func() {
			boutsA := []model.Bout{boutAgainst(1, "Opp1", model.Win, model.KO, 2010)}
			boutsB := []model.Bout{boutAgainst(2, "Opp2", model.Win, model.KO, 2010)}

			_, err := e.CommonOpponents("A", boutsA, "B", boutsB)

			So(errors.Is(err, ErrInsufficientData), ShouldBeTrue)
		})

		Convey("When a rematch follows an earlier meeting", func() {
			boutsA := []model.Bout{
				boutAgainst(9, "Frazier", model.Loss, model.UnanimD, 1971),
				boutAgainst(9, "Frazier", model.Win, model.UnanimD, 1974),
			}
			boutsB := []model.Bout{boutAgainst(9, "Frazier", model.Loss, model.TKO, 1973)}

			res, err := e.CommonOpponents("Ali", boutsA, "Quarry", boutsB)

			Convey("Then only the most recent meeting counts", func() {
				So(err, ShouldBeNil)
				So(res.Details[0].ResultA, ShouldEqual, model.Win)
				So(res.ScoreA, ShouldEqual, 3)
				So(res.ScoreB, ShouldEqual, 0)
			})
		})

		Convey("When several opponents are shared", func() {
			boutsA := []model.Bout{
				boutAgainst(5, "Echo", model.Win, model.KO, 2011),
				boutAgainst(2, "Bravo", model.Win, model.UnanimD, 2012),
				boutAgainst(8, "Hotel", model.Draw, model.Decision, 2013),
			}
			boutsB := []model.Bout{
				boutAgainst(8, "Hotel", model.Win, model.UnanimD, 2012),
				boutAgainst(5, "Echo", model.Loss, model.KO, 2013),
				boutAgainst(2, "Bravo", model.Loss, model.UnanimD, 2014),
			}

			first, err := e.CommonOpponents("A", boutsA, "B", boutsB)
			So(err, ShouldBeNil)

			Convey("Then details come back ordered by opponent", func() {
				So(first.Details, ShouldHaveLength, 3)
				So(first.Details[0].Opponent, ShouldEqual, "Bravo")
				So(first.Details[1].Opponent, ShouldEqual, "Echo")
				So(first.Details[2].Opponent, ShouldEqual, "Hotel")
			})

			Convey("Then a rerun reproduces the result exactly", func() {
				second, err := e.CommonOpponents("A", boutsA, "B", boutsB)
				So(err, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given the ordinal outcome scale", t, func() {
		cases := []struct {
			bout  model.Bout
			score int
		}{
			{model.Bout{Result: model.Win, Method: model.KO}, scoreKOWin},
			{model.Bout{Result: model.Win, Method: model.RTD}, scoreKOWin},
			{model.Bout{Result: model.Win, Method: model.MajorityD}, scoreDecisionWin},
			{model.Bout{Result: model.Draw, Method: model.Decision}, scoreDraw},
			{model.Bout{Result: model.Loss, Method: model.SplitD}, scoreDecisionLoss},
			{model.Bout{Result: model.Loss, Method: model.TKO}, scoreKOLoss},
		}

		Convey("Every outcome maps to its rank", func() {
			for _, c := range cases {
				So(outcomeScore(c.bout), ShouldEqual, c.score)
			}
		})
	})
}
