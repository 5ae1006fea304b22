package client

import "people"

func use() {
	_, _ = people.NewPersonBuilder().Name("x").Build() // want `Build called before required field ID of PersonBuilder is set`
	_ = people.NewPersonBuilder().Renumber(1)            // want `Renumber requires field ID of PersonBuilder to be set`
	_ = people.NewPersonBuilder().ID(1).ID(1)            // want `field ID of PersonBuilder is already set`

	b := people.NewPersonBuilder().ID(7)
	_, _ = people.BuildPerson(b.Renumber(8))
}
