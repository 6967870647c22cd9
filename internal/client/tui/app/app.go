package app

import (
	"sync"

	"github.com/rivo/tview"
)

// App представляет TUI-приложение.
type App struct {
	App   *tview.Application
	Pages *tview.Pages

	mu     sync.Mutex
	onShow map[string]func()
}

// Primitives - структуры для хранения и передачи экранов.
type Primitives struct {
	Name string
	Prim func(*App) tview.Primitive
}

// NewApp создаёт новое TUI-приложение.
// Первый экран из списка становится видимым при запуске.
func NewApp(prims []Primitives) *App {
	tuiApp := &App{
		App:    tview.NewApplication(),
		Pages:  tview.NewPages(),
		onShow: make(map[string]func()),
	}

	for i, p := range prims {
		tuiApp.Pages.AddPage(p.Name, p.Prim(tuiApp), true, i == 0)
	}

	tuiApp.App.SetRoot(tuiApp.Pages, true)

	return tuiApp
}

// OnShow регистрирует функцию, которая вызывается перед каждым показом экрана.
// Используется экранами, содержимое которых зависит от текущей сессии.
func (a *App) OnShow(page string, f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onShow[page] = f
}

// Run запускает приложение.
func (a *App) Run() error {
	return a.App.Run()
}

// SwitchTo переключает экран.
func (a *App) SwitchTo(page string) {
	a.mu.Lock()
	f := a.onShow[page]
	a.mu.Unlock()

	if f != nil {
		f()
	}
	a.Pages.SwitchToPage(page)
}

// Stop останавливает приложение.
func (a *App) Stop() {
	a.App.Stop()
}
