package generators

type Part interface {
	isPart()
}

type Text string

func (Text) isPart() {}

type Thought string

func (Thought) isPart() {}

type FinishReason string

func (FinishReason) isPart() {}

type Error struct {
	Error error
}

func (Error) isPart() {}
