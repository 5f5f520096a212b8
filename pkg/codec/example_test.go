package codec_test

import (
	"fmt"
	"strings"

	"github.com/adrianowead/wead/pkg/codec"
)

func ExampleEscape() {
	fmt.Println(codec.Escape("Ana"))
	fmt.Println(codec.Escape("Silva, Maria"))
	fmt.Println(codec.Escape(`say "hi"`))
	// Output:
	// Ana
	// "Silva, Maria"
	// "say ""hi"""
}

func ExampleUnescape() {
	fmt.Println(codec.Unescape(`  "Silva, Maria" `))
	fmt.Println(codec.Unescape(`"say ""hi"""`))
	// Output:
	// Silva, Maria
	// say "hi"
}

func ExampleEncodeLine() {
	fmt.Print(codec.EncodeLine(2, "Silva, Maria", "maria@x.com", "222"))
	// Output:
	// 2,"Silva, Maria",maria@x.com,222
}

func ExampleSplit() {
	line := strings.TrimSuffix(codec.EncodeLine(2, "Silva, Maria", "maria@x.com", "222"), "\n")
	for _, raw := range codec.Split(line) {
		fmt.Println(codec.Unescape(raw))
	}
	// Output:
	// 2
	// Silva, Maria
	// maria@x.com
	// 222
}
