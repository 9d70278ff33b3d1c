package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/key"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Mux

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("It falls back to plain for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Variant(), ShouldEqual, plain)
			So(Get(target), ShouldEqual, icons[target].plain)
		})

		Convey("An unregistered icon renders as nothing", func() {
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every icon has a plain rendering", t, func() {
		viper.Set(key.IconsVariant, "plain")
		for i := range icons {
			So(Get(i), ShouldNotBeEmpty)
		}
	})
}
