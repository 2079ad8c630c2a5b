package analysis

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringside/internal/domain/model"
)

func titleBout(result model.Result, method model.Method, year int) model.Bout {
	b := boutAgainst(int64(year), "Challenger", result, method, year)
	b.TitleFight = true
	return b
}

func TestTitlePerformance(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given a metric engine with the default occasion margin", t, func() {
		e := NewEngine()

		Convey("When title-fight form far exceeds the rest of the career", func() {
			bouts := []model.Bout{
				boutAgainst(1, "Journeyman", model.Win, model.UnanimD, 2015),
				boutAgainst(2, "Journeyman", model.Loss, model.SplitD, 2016),
				boutAgainst(3, "Journeyman", model.Win, model.KO, 2017),
				boutAgainst(4, "Journeyman", model.Loss, model.UnanimD, 2018),
				titleBout(model.Win, model.KO, 2019),
				titleBout(model.Win, model.TKO, 2020),
				titleBout(model.Win, model.UnanimD, 2021),
			}
			titles := []model.Title{
				{Name: "WBC Heavyweight", WonDate: time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC), Defenses: 2},
			}

			res, err := e.TitlePerformance("Occasion", bouts, titles, now)

			Convey("Then the fighter rises to the occasion", func() {
				So(err, ShouldBeNil)
				So(res.RisesToOccasion, ShouldBeTrue)
				So(res.Assessment, ShouldEqual, "Significantly better")
				So(res.WinRateDifference, ShouldEqual, 50.0)
			})

			Convey("Then the splits separate title from non-title bouts", func() {
				So(res.TitleRecord, ShouldEqual, "3-0-0")
				So(res.Title.Fights, ShouldEqual, 3)
				So(res.Title.WinRate, ShouldEqual, 1.0)
				So(res.NonTitle.Fights, ShouldEqual, 4)
				So(res.NonTitle.WinRate, ShouldEqual, 0.5)
			})

			Convey("Then a held belt keeps the tenure running", func() {
				So(res.StillChampion, ShouldBeTrue)
				So(res.CurrentTitles, ShouldResemble, []string{"WBC Heavyweight"})
				So(res.Tenure, ShouldEqual, now.Sub(titles[0].WonDate))
				So(res.TotalDefenses, ShouldEqual, 2)
			})
		})

		Convey("When every belt has been lost", func() {
			bouts := []model.Bout{
				titleBout(model.Win, model.KO, 2015),
				titleBout(model.Loss, model.TKO, 2018),
			}
			won := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
			lost := time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC)
			titles := []model.Title{{Name: "IBF Welterweight", WonDate: won, LostDate: lost}}

			res, err := e.TitlePerformance("Former", bouts, titles, now)

			Convey("Then the reign ends at the first loss", func() {
				So(err, ShouldBeNil)
				So(res.StillChampion, ShouldBeFalse)
				So(res.CurrentTitles, ShouldBeEmpty)
				So(res.Tenure, ShouldEqual, lost.Sub(won))
			})
		})

		Convey("When a career holds no title fights at all", func() {
			bouts := []model.Bout{
				boutAgainst(1, "Journeyman", model.Win, model.KO, 2015),
				boutAgainst(2, "Journeyman", model.Win, model.KO, 2016),
			}

			_, err := e.TitlePerformance("Contender", bouts, nil, now)

			So(errors.Is(err, ErrInsufficientData), ShouldBeTrue)
		})

		Convey("When title form trails the rest of the career", func() {
			bouts := []model.Bout{
				boutAgainst(1, "Journeyman", model.Win, model.KO, 2014),
				boutAgainst(2, "Journeyman", model.Win, model.KO, 2015),
				titleBout(model.Loss, model.UnanimD, 2016),
				titleBout(model.Win, model.SplitD, 2017),
			}
			res, err := e.TitlePerformance("Nearly", bouts, nil, now)

			So(err, ShouldBeNil)
			So(res.RisesToOccasion, ShouldBeFalse)
			So(res.Assessment, ShouldEqual, "Significantly worse")
			So(res.WinRateDifference, ShouldEqual, -50.0)
		})
	})

	Convey("Given a widened occasion margin", t, func() {
		e := NewEngine(WithOccasionMargin(60))

		Convey("A 50 point edge no longer counts as rising to the occasion", func() {
			bouts := []model.Bout{
				boutAgainst(1, "Journeyman", model.Win, model.KO, 2015),
				boutAgainst(2, "Journeyman", model.Loss, model.KO, 2016),
				titleBout(model.Win, model.KO, 2017),
			}
			res, err := e.TitlePerformance("Edge", bouts, nil, now)

			So(err, ShouldBeNil)
			So(res.RisesToOccasion, ShouldBeFalse)
			So(res.Assessment, ShouldEqual, "Slightly better")
		})
	})
}
