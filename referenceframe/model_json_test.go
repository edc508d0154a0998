package referenceframe

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestParseJSONFile(t *testing.T) {
	goodFiles := []string{
		"models/ur5.json",
		"models/ur5e.json",
	}

	for _, f := range goodFiles {
		t.Run(f, func(t *testing.T) {
			model, err := ParseModelJSONFile(f, "")
			test.That(t, err, test.ShouldBeNil)
			test.That(t, model.DoF(), test.ShouldEqual, 6)

			data, err := model.MarshalJSON()
			test.That(t, err, test.ShouldBeNil)

			model2, err := UnmarshalModelJSON(data, "")
			test.That(t, err, test.ShouldBeNil)

			data2, err := model2.MarshalJSON()
			test.That(t, err, test.ShouldBeNil)

			test.That(t, data, test.ShouldResemble, data2)
		})
	}

	badFiles := []struct {
		file string
		err  error
	}{
		{"testjson/loop.json", ErrCircularReference},
		{"testjson/twotips.json", ErrNeedOneEndEffector},
	}
	for _, tc := range badFiles {
		t.Run(tc.file, func(t *testing.T) {
			_, err := ParseModelJSONFile(tc.file, "")
			test.That(t, errors.Is(err, tc.err), test.ShouldBeTrue)
		})
	}

	badMessages := []struct {
		file string
		err  error
	}{
		{"testjson/worldDH.json", NewReservedWordError("link", "world")},
		{"testjson/missingparent.json", NewFrameNotInListOfTransformsError("pedestal")},
		{"testjson/svaarm.json", NewUnsupportedParamTypeError("SVA")},
	}
	for _, tc := range badMessages {
		t.Run(tc.file, func(t *testing.T) {
			_, err := ParseModelJSONFile(tc.file, "")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldEqual, tc.err.Error())
		})
	}

	_, err := ParseModelJSONFile("testjson/does_not_exist.json", "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParentOrdering(t *testing.T) {
	model, err := ParseModelJSONFile("models/ur5e.json", "myarm")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.Name(), test.ShouldEqual, "myarm")
	test.That(t, model.LinkNames(), test.ShouldResemble, []string{
		"shoulder_pan", "shoulder_lift", "elbow", "wrist_1", "wrist_2", "wrist_3",
	})
	test.That(t, model.Links()[0].D, test.ShouldEqual, 0.1625)
	test.That(t, model.Links()[5].D, test.ShouldEqual, 0.0996)
}

func TestUnmarshalModelJSON(t *testing.T) {
	_, err := UnmarshalModelJSON(nil, "")
	test.That(t, err, test.ShouldEqual, ErrNoModelInformation)

	_, err = UnmarshalModelJSON([]byte("{not json"), "")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to unmarshal json file")

	model, err := UnmarshalModelJSON([]byte(`{"name": "empty", "dhParams": []}`), "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.DoF(), test.ShouldEqual, 0)
	test.That(t, model.Name(), test.ShouldEqual, "empty")
}

func TestValidateAccumulatesErrors(t *testing.T) {
	cfg := &ModelConfigJSON{
		Name:         "bad",
		KinParamType: "URDF",
		DHParams: []DHParamConfig{
			{ID: "world"},
			{ID: "a"},
			{ID: "a"},
		},
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unsupported param type: URDF")
	test.That(t, err.Error(), test.ShouldContainSubstring, "reserved word")
	test.That(t, err.Error(), test.ShouldContainSubstring, "duplicate link id 'a'")

	mixed := &ModelConfigJSON{DHParams: []DHParamConfig{{ID: "a", Parent: World}, {ID: "b"}}}
	test.That(t, mixed.Validate(), test.ShouldNotBeNil)
}

func TestEnvSubstitution(t *testing.T) {
	t.Setenv("DHFK_TEST_BASE_HEIGHT", "0.25")
	model, err := ParseModelJSONFile("testjson/envarm.json", "")
	test.That(t, err, test.ShouldBeNil)
	links := model.Links()
	test.That(t, links[0].D, test.ShouldEqual, 0.25)
	test.That(t, links[1].A, test.ShouldEqual, 0.5)
}

func TestModelJSONSchema(t *testing.T) {
	schema := ModelJSONSchema()
	data, err := json.Marshal(schema)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "dhParams")
	test.That(t, string(data), test.ShouldContainSubstring, "alpha")
}

func TestBuiltinModels(t *testing.T) {
	test.That(t, BuiltinModelNames(), test.ShouldResemble, []string{"ur5", "ur5e"})

	m, err := BuiltinModel("ur5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Name(), test.ShouldEqual, "ur5")
	links := m.Links()
	test.That(t, links[1].A, test.ShouldEqual, -0.425)
	test.That(t, links[4].Alpha, test.ShouldEqual, -math.Pi/2)
	test.That(t, m.CheckFinite(), test.ShouldBeNil)

	_, err = BuiltinModel("ur10")
	test.That(t, err, test.ShouldNotBeNil)
}
