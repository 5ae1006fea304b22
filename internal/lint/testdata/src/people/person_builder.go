package people

import "typedbuilder"

type Person struct {
	ID   int
	Name string
	Tags []string
}

type PersonBuilder[IDState typedbuilder.Required[int], NameState typedbuilder.Field[string], TagsState typedbuilder.Field[[]string]] struct {
	fID   IDState   `typedbuilder:"ID"`
	fName NameState `typedbuilder:"Name"`
	fTags TagsState `typedbuilder:"Tags"`
	err   error
}

type PersonBuilderInit = PersonBuilder[typedbuilder.Unset[int], typedbuilder.Unset[string], typedbuilder.Set[[]string]]

func NewPersonBuilder() PersonBuilderInit {
	return PersonBuilderInit{fTags: typedbuilder.Set[[]string]{}}
}

func (b PersonBuilder[IDState, NameState, TagsState]) ID(id int) PersonBuilder[typedbuilder.Set[int], NameState, TagsState] {
	return PersonBuilder[typedbuilder.Set[int], NameState, TagsState]{
		fID:   typedbuilder.Set[int]{Value: id},
		fName: b.fName,
		fTags: b.fTags,
		err:   b.err,
	}
}

func (b PersonBuilder[IDState, NameState, TagsState]) Name(name string) PersonBuilder[IDState, typedbuilder.Set[string], TagsState] {
	return PersonBuilder[IDState, typedbuilder.Set[string], TagsState]{
		fID:   b.fID,
		fName: typedbuilder.Set[string]{Value: name},
		fTags: b.fTags,
		err:   b.err,
	}
}

//typedbuilder:mutator requires ID
func (b PersonBuilder[IDState, NameState, TagsState]) Renumber(id int) PersonBuilder[IDState, NameState, TagsState] { // want Renumber:"mutator requires ID"
	return b
}

//typedbuilder:mutator requires Tags
func (b PersonBuilder[IDState, NameState, TagsState]) AddTag(tag string) PersonBuilder[IDState, NameState, TagsState] { // want AddTag:"mutator requires Tags"
	return b
}

//typedbuilder:finalize
func (b PersonBuilder[IDState, NameState, TagsState]) Build() (Person, error) { // want Build:"finalize"
	return Person{ID: b.fID.Get(), Name: b.fName.Get(), Tags: b.fTags.Get()}, b.err
}

//typedbuilder:finalize
func BuildPerson[NameState typedbuilder.Field[string], TagsState typedbuilder.Field[[]string]](b PersonBuilder[typedbuilder.Set[int], NameState, TagsState]) (Person, error) { // want BuildPerson:"finalize static"
	return Person{ID: b.fID.Get(), Name: b.fName.Get(), Tags: b.fTags.Get()}, b.err
}
