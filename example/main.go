package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/struct0x/typedlog"
	"github.com/struct0x/typedlog/zapsink"
)

// Garden is logged through two typed handlers.
type Garden struct {
	FlowerAmount int `json:"flower_amount"`
}

func (Garden) Loggable() {}

// MarshalLogObject lets zapsink encode a Garden as structured fields.
func (g Garden) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("flower_amount", g.FlowerAmount)
	return nil
}

// MyCustomStruct is logged through a plain function handler.
type MyCustomStruct struct {
	typedlog.Marker
	ToLog string
}

func logger(s MyCustomStruct) {
	fmt.Println(s.ToLog)
}

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = zl.Sync() }()

	typedlog.Push(func(g Garden) {
		fmt.Printf("%+v\n", g)
	})
	typedlog.Push(func(g Garden) {
		fmt.Println(strings.Repeat("🌸", g.FlowerAmount))
		fmt.Println("Thanks for visiting my garden.")
	})
	typedlog.Push(logger)

	typedlog.PushAny(func(v typedlog.Loggable) {
		fmt.Printf("logged a %v; this handler's reference to it lives at %p\n", typedlog.TypeIDOf(v), &v)
	})
	typedlog.PushAny(zapsink.New(zl, zapsink.WithMessage("dispatched")))

	makeAGarden()

	typedlog.Log(MyCustomStruct{ToLog: "inner value"})

	// Values can also arrive encoded, e.g. read off a pipe.
	reg := typedlog.Default()
	typedlog.RegisterFactory(reg, "garden", typedlog.JSONFactory[Garden]())
	if err := typedlog.DispatchEncoded(reg, "garden", []byte(`{"flower_amount": 3}`)); err != nil {
		zl.Error("dispatch encoded", zap.Error(err))
	}
}

func makeAGarden() {
	typedlog.Log(Garden{FlowerAmount: 10})
}
