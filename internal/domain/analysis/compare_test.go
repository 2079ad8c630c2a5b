package analysis

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringside/internal/domain/model"
)

func TestCompareStats(t *testing.T) {
	Convey("Given a metric engine", t, func() {
		e := NewEngine()

		Convey("When one fighter leads on every factor", func() {
			puncher := model.Fighter{
				Name: "Puncher", Wins: 50, Losses: 1, Draws: 0,
				KOPercentage: 88, ReachCM: 206,
			}
			boxer := model.Fighter{
				Name: "Boxer", Wins: 30, Losses: 4, Draws: 1,
				KOPercentage: 40, ReachCM: 180,
			}
			belts := []model.Title{{Name: "WBC"}, {Name: "WBO"}, {Name: "IBF"}}

			res := e.CompareStats(puncher, boxer, belts, nil)

			Convey("Then every advantage lands on the same side", func() {
				So(res.AdvantagesA, ShouldHaveLength, 5)
				So(res.AdvantagesB, ShouldBeEmpty)
				So(res.Factors, ShouldEqual, 5)
				So(res.Favorite, ShouldEqual, "Puncher")
			})

			Convey("Then the confidence is capped", func() {
				So(res.Confidence, ShouldEqual, compareConfMax)
			})

			Convey("Then the records are formatted", func() {
				So(res.RecordA, ShouldEqual, "50-1-0")
				So(res.RecordB, ShouldEqual, "30-4-1")
			})
		})

		Convey("When the profiles are identical", func() {
			twin := model.Fighter{Name: "Twin", Wins: 20, Losses: 2, KOPercentage: 55, ReachCM: 190}
			other := twin
			other.Name = "Other"

			res := e.CompareStats(twin, other, nil, nil)

			So(res.Favorite, ShouldEqual, TooCloseToCall)
			So(res.Confidence, ShouldEqual, evenConfidence)
			So(res.Factors, ShouldEqual, 0)
		})

		Convey("When the advantages split evenly", func() {
			slick := model.Fighter{Name: "Slick", Wins: 25, Losses: 0, KOPercentage: 50, ReachCM: 180}
			rangy := model.Fighter{Name: "Rangy", Wins: 25, Losses: 3, KOPercentage: 50, ReachCM: 190}

			res := e.CompareStats(slick, rangy, nil, nil)

			So(res.AdvantagesA, ShouldHaveLength, 1)
			So(res.AdvantagesB, ShouldHaveLength, 1)
			So(res.Favorite, ShouldEqual, TooCloseToCall)
			So(res.Confidence, ShouldEqual, evenConfidence)
		})

		Convey("When a difference sits inside the margin", func() {
			a := model.Fighter{Name: "A", Wins: 20, Losses: 1, KOPercentage: 60, ReachCM: 183}
			b := model.Fighter{Name: "B", Wins: 15, Losses: 1, KOPercentage: 56, ReachCM: 180}

			res := e.CompareStats(a, b, nil, nil)

			Convey("Then near-ties contribute no advantage", func() {
				So(res.Factors, ShouldEqual, 0)
				So(res.Favorite, ShouldEqual, TooCloseToCall)
			})
		})

		Convey("When one side has a single clear edge", func() {
			a := model.Fighter{Name: "A", Wins: 20, Losses: 1, KOPercentage: 60, ReachCM: 183}
			b := model.Fighter{Name: "B", Wins: 20, Losses: 1, KOPercentage: 40, ReachCM: 183}

			res := e.CompareStats(a, b, nil, nil)

			So(res.Favorite, ShouldEqual, "A")
			So(res.Confidence, ShouldEqual, compareConfBase+compareConfStep)
		})

		Convey("When only championship pedigree differs", func() {
			a := model.Fighter{Name: "A", Wins: 20, Losses: 1, KOPercentage: 60, ReachCM: 183}
			b := a
			b.Name = "B"
			belts := []model.Title{{Name: "WBA", WonDate: time.Now()}}

			res := e.CompareStats(a, b, nil, belts)

			So(res.AdvantagesB, ShouldHaveLength, 1)
			So(res.Favorite, ShouldEqual, "B")
		})
	})
}
