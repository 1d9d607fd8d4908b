package engine

// Hooks are invoked synchronously from inside the engine call that caused them.
// Any field may be nil.
type Hooks struct {
	OnGameStart    func()
	OnFirstInput   func()
	OnScoreChanged func(current, high int)
	OnGameOver     func()
	OnWon          func()
}

func (h Hooks) gameStart() {
	if h.OnGameStart != nil {
		h.OnGameStart()
	}
}

func (h Hooks) firstInput() {
	if h.OnFirstInput != nil {
		h.OnFirstInput()
	}
}

func (h Hooks) scoreChanged(current, high int) {
	if h.OnScoreChanged != nil {
		h.OnScoreChanged(current, high)
	}
}

func (h Hooks) gameOver() {
	if h.OnGameOver != nil {
		h.OnGameOver()
	}
}

func (h Hooks) won() {
	if h.OnWon != nil {
		h.OnWon()
	}
}
