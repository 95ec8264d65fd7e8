package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/krishi-mitra/agent/nodes"
)

func (o *Orchestrator) compileHandleRequestGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodex.NodeNewRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.NewRequestState(in, o.now, o.newID)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeNewRequest, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeLoadContext,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadContext(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeLoadContext, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeClassifyIntent,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(in, o.classifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeClassifyIntent, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeRespondWeather,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RespondWeather(ctx, in, o.weather)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeRespondWeather, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeRespondYield,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RespondYield(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeRespondYield, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeRespondAdvice,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RespondAdvice(ctx, in, o.advisor, o.advisorPrompt)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeRespondAdvice, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeRecordExchange,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordExchange(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeRecordExchange, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFinalizeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeFinalizeReply, err)
	}

	afterLoad := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.RouteAfterLoad(in)
		},
		map[string]bool{
			nodex.NodeClassifyIntent: true,
			nodex.NodeFinalizeReply:  true,
		},
	)
	if err := graph.AddBranch(nodex.NodeLoadContext, afterLoad); err != nil {
		return nil, fmt.Errorf("add branch after %s: %w", nodex.NodeLoadContext, err)
	}

	byIntent := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.RouteByIntent(in)
		},
		map[string]bool{
			nodex.NodeRespondWeather: true,
			nodex.NodeRespondYield:   true,
			nodex.NodeRespondAdvice:  true,
		},
	)
	if err := graph.AddBranch(nodex.NodeClassifyIntent, byIntent); err != nil {
		return nil, fmt.Errorf("add branch after %s: %w", nodex.NodeClassifyIntent, err)
	}

	edges := [][2]string{
		{compose.START, nodex.NodeNewRequest},
		{nodex.NodeNewRequest, nodex.NodeLoadContext},
		{nodex.NodeRespondWeather, nodex.NodeRecordExchange},
		{nodex.NodeRespondYield, nodex.NodeRecordExchange},
		{nodex.NodeRespondAdvice, nodex.NodeRecordExchange},
		{nodex.NodeRecordExchange, nodex.NodeFinalizeReply},
		{nodex.NodeFinalizeReply, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_request"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
