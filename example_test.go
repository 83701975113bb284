package mkjson_test

import (
	"fmt"

	"github.com/d1ced/mkjson"
)

func ExampleBuild() {
	data, err := mkjson.Build(mkjson.KindObject, 4,
		mkjson.S("device", `USB "High-Speed" Hub`),
		mkjson.I("port", 3),
		mkjson.SP("serial", nil),
		mkjson.A("speeds", 2, mkjson.F("", 1.5), mkjson.F("", 480)),
	)
	if err != nil {
		return
	}
	fmt.Printf("%s\n", data)
	// Output: {"device": "USB \"High-Speed\" Hub", "port": 3, "serial": null, "speeds": [1.5, 480]}
}

func ExampleValue_MarshalJSON() {
	n := mkjson.Obj(
		mkjson.M("Num", mkjson.Float(3.125)),
		mkjson.M("Str", mkjson.Str("Hello, World!")),
	)
	data, _ := n.MarshalJSON()
	fmt.Printf("%s", data)
	// Output: {"Num": 3.125, "Str": "Hello, World!"}
}

func ExampleValue_String() {
	root := mkjson.Obj(
		mkjson.M("a", mkjson.Int(20)),
		mkjson.M("b", mkjson.Arr(mkjson.Bool(true), mkjson.Null())),
	)
	fmt.Println(root.String())
	// Output: {"a":20,"b":[true,null]}
}

func ExampleValue_Interface() {
	root := mkjson.Arr(mkjson.Obj(mkjson.M("a", mkjson.Null())), mkjson.Bool(true))
	v, _ := root.Interface()
	fmt.Println(v)
	// Output: [map[a:<nil>] true]
}

func ExampleMarshalIndent() {
	doc := mkjson.Obj(
		mkjson.M("name", mkjson.Str("hub")),
		mkjson.M("ports", mkjson.Arr(mkjson.Int(1), mkjson.Int(2))),
	)
	data, _ := mkjson.MarshalIndent(doc, "", "  ")
	fmt.Printf("%s\n", data)
	// Output:
	// {
	//   "name": "hub",
	//   "ports": [
	//     1,
	//     2
	//   ]
	// }
}

func ExampleEscape() {
	fmt.Println(mkjson.Escape("tab\there \x01 \"q\""))
	// Output: tab\there \u0001 \"q\"
}
