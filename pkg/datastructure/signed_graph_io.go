package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
)

type NetworkType uint8

const (
	SIGNED_NETWORK NetworkType = iota
	UNSIGNED_NETWORK
)

func (nt NetworkType) String() string {
	switch nt {
	case SIGNED_NETWORK:
		return "signed"
	case UNSIGNED_NETWORK:
		return "unsigned"
	default:
		return fmt.Sprintf("NetworkType(%d)", nt)
	}
}

func ParseNetworkType(s string) (NetworkType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signed":
		return SIGNED_NETWORK, nil
	case "unsigned":
		return UNSIGNED_NETWORK, nil
	default:
		return 0, util.NewErrorf(util.ErrConfig, "no such type of network: %q", s)
	}
}

const COMPRESSED_SUFFIX = ".bz2"

// ReadSignedGraph. read a graph file, files ending in .bz2 are decompressed on the fly.
func ReadSignedGraph(filename string, networkType NetworkType, oneIndexed bool) (*SignedGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, COMPRESSED_SUFFIX) {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	g, err := ParseSignedGraph(r, networkType, oneIndexed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}

/*
ParseSignedGraph. text format:

	<vertexCount> <edgeCount>
	<node1> <node2> <sign>     (signed, sign in {1, -1}; lines with any other sign token are skipped)
	<node1> <node2>            (unsigned, sign is +1)

node ids are 0-indexed unless oneIndexed is set, edges are undirected. blank lines are ignored.
*/
func ParseSignedGraph(r io.Reader, networkType NetworkType, oneIndexed bool) (*SignedGraph, error) {
	br := bufio.NewReader(r)

	header, err := util.ReadLine(br)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: missing header")
	}
	hf := util.Fields(header)
	if len(hf) != 2 {
		return nil, util.NewErrorf(util.ErrMalformedInput, "line 1: header expects 2 fields, got %d", len(hf))
	}
	numVertices, err := strconv.Atoi(hf[0])
	if err != nil || numVertices < 0 {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: invalid vertex count %q", hf[0])
	}
	if _, err := strconv.Atoi(hf[1]); err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: invalid edge count %q", hf[1])
	}

	wantFields := 3
	if networkType == UNSIGNED_NETWORK {
		wantFields = 2
	} else if networkType != SIGNED_NETWORK {
		return nil, util.NewErrorf(util.ErrConfig, "no such type of network: %v", networkType)
	}

	builder := NewSignedGraphBuilder(numVertices)
	lineNo := 1
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		lineNo++

		ff := util.Fields(line)
		if len(ff) == 0 {
			continue
		}
		if len(ff) != wantFields {
			return nil, util.NewErrorf(util.ErrMalformedInput, "line %d: expects %d fields, got %d", lineNo, wantFields, len(ff))
		}

		sign := POSITIVE
		if networkType == SIGNED_NETWORK {
			switch ff[2] {
			case "1":
				sign = POSITIVE
			case "-1":
				sign = NEGATIVE
			default:
				continue
			}
		}

		u, err := parseNodeID(ff[0], oneIndexed)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrMalformedInput, "line %d: invalid node id %q", lineNo, ff[0])
		}
		v, err := parseNodeID(ff[1], oneIndexed)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrMalformedInput, "line %d: invalid node id %q", lineNo, ff[1])
		}

		if err := builder.AddEdge(u, v, sign); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return builder.Build(), nil
}

func parseNodeID(s string, oneIndexed bool) (Index, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if oneIndexed {
		id--
	}
	if id < 0 || id > math.MaxUint32 {
		return 0, fmt.Errorf("node id %d out of range", id)
	}
	return Index(id), nil
}

// WriteGraph. write the graph in the text format read by ReadSignedGraph, one line per undirected edge.
func (g *SignedGraph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, COMPRESSED_SUFFIX) {
		return g.Write(f)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := g.Write(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (g *SignedGraph) Write(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d %d\n", g.numVertices, g.numEdges)

	g.ForEachEdge(func(u, v Index, sign Sign) {
		fmt.Fprintf(w, "%d %d %d\n", u, v, sign)
	})

	return w.Flush()
}

// DatasetInfo. edge sign statistics of a signed graph file.
type DatasetInfo struct {
	NumVertices   int `json:"vnum"`
	NumEdges      int `json:"enum"`
	PositiveEdges int `json:"positive_enum"`
	NegativeEdges int `json:"negative_enum"`
	ZeroEdges     int `json:"zero_enum"`
	Left          int `json:"left"` // declared edges not accounted for by any sign line
}

func ReadDatasetInfo(filename string) (DatasetInfo, error) {
	f, err := os.Open(filename)
	if err != nil {
		return DatasetInfo{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, COMPRESSED_SUFFIX) {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return DatasetInfo{}, err
		}
		defer bz.Close()
		r = bz
	}
	return ParseDatasetInfo(r)
}

func ParseDatasetInfo(r io.Reader) (DatasetInfo, error) {
	var info DatasetInfo
	br := bufio.NewReader(r)

	header, err := util.ReadLine(br)
	if err != nil {
		return info, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: missing header")
	}
	hf := util.Fields(header)
	if len(hf) != 2 {
		return info, util.NewErrorf(util.ErrMalformedInput, "line 1: header expects 2 fields, got %d", len(hf))
	}
	if info.NumVertices, err = strconv.Atoi(hf[0]); err != nil {
		return info, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: invalid vertex count %q", hf[0])
	}
	if info.NumEdges, err = strconv.Atoi(hf[1]); err != nil {
		return info, util.WrapErrorf(err, util.ErrMalformedInput, "line 1: invalid edge count %q", hf[1])
	}

	lineNo := 1
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return info, err
		}
		lineNo++
		ff := util.Fields(line)
		if len(ff) == 0 {
			continue
		}
		if len(ff) != 3 {
			return info, util.NewErrorf(util.ErrMalformedInput, "line %d: expects 3 fields, got %d", lineNo, len(ff))
		}
		switch ff[2] {
		case "1":
			info.PositiveEdges++
		case "-1":
			info.NegativeEdges++
		case "0":
			info.ZeroEdges++
		}
	}
	info.Left = info.NumEdges - info.PositiveEdges - info.NegativeEdges - info.ZeroEdges
	return info, nil
}

// EstimateCommunityNumbers. rough number of clusters expected for a graph with n vertices, sqrt(n ln n).
func EstimateCommunityNumbers(n int) float64 {
	if n <= 1 {
		return float64(n)
	}
	return math.Sqrt(float64(n) * math.Log(float64(n)))
}
