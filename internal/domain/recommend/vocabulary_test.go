package recommend_test

import (
	"testing"

	recommend "github.com/planora/planora/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractKeywords(t *testing.T) {
	Convey("Given event name and description text", t, func() {
		Convey("When the text mentions vocabulary terms", func() {
			keywords := recommend.ExtractKeywords("Wedding catering for 100 guests", "")

			Convey("Then every matching term is extracted", func() {
				So(keywords, ShouldContain, "wedding")
				So(keywords, ShouldContain, "catering")
			})
		})

		Convey("When a term appears inside a longer word", func() {
			keywords := recommend.ExtractKeywords("Office relocationservices day", "")

			Convey("Then substring containment still matches", func() {
				So(keywords, ShouldContain, "location")
			})
		})

		Convey("When casing differs", func() {
			keywords := recommend.ExtractKeywords("ANNUAL GALA", "LIVE MUSIC")
			So(keywords, ShouldContain, "gala")
			So(keywords, ShouldContain, "music")
		})

		Convey("When no vocabulary term matches", func() {
			keywords := recommend.ExtractKeywords("", "")

			Convey("Then the two-keyword default is returned", func() {
				So(keywords, ShouldResemble, []string{"event", "professional"})
			})
		})
	})
}

func TestRelevantCategories(t *testing.T) {
	Convey("Given event text", t, func() {
		Convey("When several trigger rules fire", func() {
			categories := recommend.RelevantCategories(
				"Product launch dinner",
				"live music, stage lighting and flower decorations",
			)

			Convey("Then every fired category is included", func() {
				So(categories, ShouldContain, "Catering")     // dinner
				So(categories, ShouldContain, "Audio/Visual") // music, lighting
				So(categories, ShouldContain, "Decor")        // decor, flowers
			})
		})

		Convey("When triggers match inside longer words", func() {
			categories := recommend.RelevantCategories("Staffordshire showcase", "")

			Convey("Then containment matching fires the rule", func() {
				So(categories, ShouldContain, "Staffing") // "staff" in Staffordshire
			})
		})

		Convey("When no rule fires", func() {
			categories := recommend.RelevantCategories("", "")

			Convey("Then the four-category default is returned", func() {
				So(categories, ShouldResemble, []string{"Catering", "Venue", "Decor", "Audio/Visual"})
			})
		})

		Convey("When the text is sparse but generic", func() {
			// "Wedding catering" fires no rule directly: the Catering
			// triggers are meal words, not the word "catering". The
			// default set still covers it.
			categories := recommend.RelevantCategories("Wedding catering for 100 guests", "")
			So(categories, ShouldContain, "Catering")
		})
	})
}
