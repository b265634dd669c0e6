// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// Print outputs a textual representation of the nodes reachable from n to
// the standard output, or of every active node in b if n is absent.
func (b *BDD) Print(n ...Node) {
	b.print(os.Stdout, n...)
}

func (b *BDD) print(w io.Writer, n ...Node) {
	if mesg := b.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		return
	}
	if len(n) == 1 && n[0] != nil {
		switch *n[0] {
		case zeroEdge:
			fmt.Fprintln(w, "False")
			return
		case oneEdge:
			fmt.Fprintln(w, "True")
			return
		case unknownEdge:
			fmt.Fprintln(w, "Unknown")
			return
		}
	}
	nodes := make([][4]int, 0)
	err := b.Allnodes(func(id, level, low, high int) error {
		i := sort.Search(len(nodes), func(i int) bool {
			return nodes[i][0] >= id
		})
		nodes = append(nodes, [4]int{})
		copy(nodes[i+1:], nodes[i:])
		nodes[i] = [4]int{id, level, low, high}
		return nil
	}, n...)
	if err != nil {
		fmt.Fprintln(w, err.Error())
		return
	}
	printNodes(w, nodes)
}

// printNodes renders each (id, level, low, high) row as a ternary branch;
// a low or high successor of 0 is the Unknown terminal and is printed as
// such rather than as a numeric id.
func printNodes(w io.Writer, nodes [][4]int) {
	for _, n := range nodes {
		if n[0] <= 1 {
			continue
		}
		fmt.Fprintf(w, "%d\t[%d\t] ? %s : %s\n", n[0], n[1], childLabel(n[3]), childLabel(n[2]))
	}
}

func childLabel(id int) string {
	switch id {
	case 0:
		return "unknown"
	case -1:
		return "False"
	case 1:
		return "True"
	default:
		return fmt.Sprintf("%d", id)
	}
}

// PrintDot writes a graph-like description, in the DOT format, of the nodes
// reachable from n to filename, or of the whole manager if n is absent. Use
// "-" as filename to write to the standard output. The Unknown terminal, if
// reachable, is drawn as a distinguished diamond-shaped node.
func (b *BDD) PrintDot(filename string, n ...Node) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	if mesg := b.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		w.Flush()
		return fmt.Errorf(mesg)
	}
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	fmt.Fprintln(w, "0 [shape=diamond, label=\"?\", style=filled, height=0.3, width=0.3];")
	seenUnknown := false
	_ = b.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			fmt.Fprintf(w, "%d %s\n", id, dotlabel(id, level))
			switch low {
			case 0:
				seenUnknown = true
				fmt.Fprintf(w, "%d -> 0 [style=dashed];\n", id)
			case -1:
				// edges to False are left implicit, as in the teacher library
			default:
				fmt.Fprintf(w, "%d -> %d [style=dotted];\n", id, low)
			}
			switch high {
			case 0:
				seenUnknown = true
				fmt.Fprintf(w, "%d -> 0 [style=dashed];\n", id)
			case -1:
			default:
				fmt.Fprintf(w, "%d -> %d [style=filled];\n", id, high)
			}
		}
		return nil
	}, n...)
	if !seenUnknown {
		fmt.Fprintln(w, "0 [style=invis];")
	}
	fmt.Fprintln(w, "}")
	w.Flush()
	return nil
}

func dotlabel(a int, b int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
